package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// AddPerson creates a new account
func (e *Engine) AddPerson(ctx context.Context, code, name, surname string) error {
	existing, err := e.persons.FindByID(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get person: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("person %q: %w", code, model.ErrAlreadyExists)
	}

	person := &model.Person{Code: code, Name: name, Surname: surname}
	if err := e.persons.Save(ctx, person); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return fmt.Errorf("person %q: %w", code, model.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to save person: %w", err)
	}

	e.logger.Info("person added", zap.String("code", code))
	return nil
}

// GetPerson retrieves a person by code
func (e *Engine) GetPerson(ctx context.Context, code string) (*model.Person, error) {
	person, err := e.persons.FindByID(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil {
		return nil, fmt.Errorf("person %q: %w", code, model.ErrNotFound)
	}
	return person, nil
}

// ListPersons returns the codes of all persons, sorted
func (e *Engine) ListPersons(ctx context.Context) ([]string, error) {
	persons, err := e.persons.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	codes := make([]string, 0, len(persons))
	for _, p := range persons {
		codes = append(codes, p.Code)
	}
	sort.Strings(codes)
	return codes, nil
}
