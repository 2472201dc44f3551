package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// PersonRepository handles person persistence
type PersonRepository struct {
	store *Store
}

var _ repository.PersonRepository = (*PersonRepository)(nil)

// FindByID retrieves a person by code
func (r *PersonRepository) FindByID(ctx context.Context, code string) (*model.Person, error) {
	query := `SELECT code, name, surname FROM persons WHERE code = ?`

	person := &model.Person{}
	err := r.store.queryRow(ctx, query, code).Scan(&person.Code, &person.Name, &person.Surname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// Save inserts a new person
func (r *PersonRepository) Save(ctx context.Context, person *model.Person) error {
	query := `INSERT INTO persons (code, name, surname) VALUES (?, ?, ?)`

	if _, err := r.store.exec(ctx, query, person.Code, person.Name, person.Surname); err != nil {
		if r.store.dialect.isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// Update modifies an existing person
func (r *PersonRepository) Update(ctx context.Context, person *model.Person) error {
	query := `UPDATE persons SET name = ?, surname = ? WHERE code = ?`

	result, err := r.store.exec(ctx, query, person.Name, person.Surname, person.Code)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return expectOneRow(result)
}

// Delete removes a person
func (r *PersonRepository) Delete(ctx context.Context, person *model.Person) error {
	result, err := r.store.exec(ctx, `DELETE FROM persons WHERE code = ?`, person.Code)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return expectOneRow(result)
}

// FindAll retrieves every person
func (r *PersonRepository) FindAll(ctx context.Context) ([]*model.Person, error) {
	rows, err := r.store.query(ctx, `SELECT code, name, surname FROM persons ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []*model.Person
	for rows.Next() {
		person := &model.Person{}
		if err := rows.Scan(&person.Code, &person.Name, &person.Surname); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}
