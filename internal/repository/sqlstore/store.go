// Package sqlstore implements the repository contract on top of
// database/sql, for both Postgres and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fkhayef/social/internal/repository"
	"github.com/fkhayef/social/internal/repository/sqlstore/migrations"
)

// Store owns a database handle and hands out one repository per entity
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New creates a store and applies the embedded migrations
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	switch dialect {
	case Postgres, SQLite:
	default:
		return nil, fmt.Errorf("unsupported dialect: %q", dialect)
	}

	if err := applyMigrations(ctx, db, dialect, migrations.FS); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Repositories returns the SQL-backed repositories
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Persons:     &PersonRepository{store: s},
		Groups:      &GroupRepository{store: s},
		Posts:       &PostRepository{store: s},
		Friendships: &FriendshipRepository{store: s},
	}
}

// Close closes the underlying database handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// withTx runs fn inside a transaction, committing when fn returns nil
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// expectOneRow maps a write that touched no rows to repository.ErrMissingKey
func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrMissingKey
	}
	return nil
}
