package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// FriendshipRepository handles friendship persistence. One row holds both
// directions of a friendship.
type FriendshipRepository struct {
	store *Store
}

var _ repository.FriendshipRepository = (*FriendshipRepository)(nil)

// FindByID retrieves a friendship by its canonical key
func (r *FriendshipRepository) FindByID(ctx context.Context, key model.FriendshipKey) (*model.Friendship, error) {
	query := `
		SELECT low_code, high_code, created_at
		FROM friendships
		WHERE low_code = ? AND high_code = ?
	`

	f := &model.Friendship{}
	err := r.store.queryRow(ctx, query, key.Low, key.High).Scan(&f.Key.Low, &f.Key.High, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	return f, nil
}

// Save inserts a new friendship
func (r *FriendshipRepository) Save(ctx context.Context, f *model.Friendship) error {
	query := `INSERT INTO friendships (low_code, high_code, created_at) VALUES (?, ?, ?)`

	if _, err := r.store.exec(ctx, query, f.Key.Low, f.Key.High, f.CreatedAt); err != nil {
		if r.store.dialect.isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	return nil
}

// Update modifies an existing friendship
func (r *FriendshipRepository) Update(ctx context.Context, f *model.Friendship) error {
	query := `UPDATE friendships SET created_at = ? WHERE low_code = ? AND high_code = ?`

	result, err := r.store.exec(ctx, query, f.CreatedAt, f.Key.Low, f.Key.High)
	if err != nil {
		return fmt.Errorf("failed to update friendship: %w", err)
	}
	return expectOneRow(result)
}

// Delete removes a friendship
func (r *FriendshipRepository) Delete(ctx context.Context, f *model.Friendship) error {
	query := `DELETE FROM friendships WHERE low_code = ? AND high_code = ?`

	result, err := r.store.exec(ctx, query, f.Key.Low, f.Key.High)
	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return expectOneRow(result)
}

// FindAll retrieves every friendship
func (r *FriendshipRepository) FindAll(ctx context.Context) ([]*model.Friendship, error) {
	query := `
		SELECT low_code, high_code, created_at
		FROM friendships
		ORDER BY created_at, low_code, high_code
	`

	rows, err := r.store.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	var friendships []*model.Friendship
	for rows.Next() {
		f := &model.Friendship{}
		if err := rows.Scan(&f.Key.Low, &f.Key.High, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		friendships = append(friendships, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	return friendships, nil
}
