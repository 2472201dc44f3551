package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// GroupRepository handles group and membership persistence
type GroupRepository struct {
	store *Store
}

var (
	_ repository.GroupRepository = (*GroupRepository)(nil)
	_ repository.GroupRenamer    = (*GroupRepository)(nil)
)

// FindByID retrieves a group and its members by name
func (r *GroupRepository) FindByID(ctx context.Context, name string) (*model.Group, error) {
	group := &model.Group{}
	err := r.store.queryRow(ctx, `SELECT name FROM social_groups WHERE name = ?`, name).Scan(&group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	query := `
		SELECT person_code
		FROM group_members
		WHERE group_name = ?
		ORDER BY person_code
	`
	rows, err := r.store.query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		group.Members = append(group.Members, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return group, nil
}

// Save inserts a new group together with its members
func (r *GroupRepository) Save(ctx context.Context, group *model.Group) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		query := r.store.dialect.rebind(`INSERT INTO social_groups (name) VALUES (?)`)
		if _, err := tx.ExecContext(ctx, query, group.Name); err != nil {
			if r.store.dialect.isUniqueViolation(err) {
				return repository.ErrDuplicateKey
			}
			return fmt.Errorf("failed to create group: %w", err)
		}
		return r.insertMembers(ctx, tx, group)
	})
}

// Update replaces the member set of an existing group
func (r *GroupRepository) Update(ctx context.Context, group *model.Group) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		var name string
		query := r.store.dialect.rebind(`SELECT name FROM social_groups WHERE name = ?`)
		if err := tx.QueryRowContext(ctx, query, group.Name).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrMissingKey
			}
			return fmt.Errorf("failed to get group: %w", err)
		}

		query = r.store.dialect.rebind(`DELETE FROM group_members WHERE group_name = ?`)
		if _, err := tx.ExecContext(ctx, query, group.Name); err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		return r.insertMembers(ctx, tx, group)
	})
}

// Delete removes a group and its memberships
func (r *GroupRepository) Delete(ctx context.Context, group *model.Group) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		query := r.store.dialect.rebind(`DELETE FROM group_members WHERE group_name = ?`)
		if _, err := tx.ExecContext(ctx, query, group.Name); err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}

		query = r.store.dialect.rebind(`DELETE FROM social_groups WHERE name = ?`)
		result, err := tx.ExecContext(ctx, query, group.Name)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return expectOneRow(result)
	})
}

// Rename moves a group and its memberships to newName in one transaction
func (r *GroupRepository) Rename(ctx context.Context, oldName, newName string) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		var name string
		query := r.store.dialect.rebind(`SELECT name FROM social_groups WHERE name = ?`)
		if err := tx.QueryRowContext(ctx, query, oldName).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrMissingKey
			}
			return fmt.Errorf("failed to get group: %w", err)
		}

		query = r.store.dialect.rebind(`INSERT INTO social_groups (name) VALUES (?)`)
		if _, err := tx.ExecContext(ctx, query, newName); err != nil {
			if r.store.dialect.isUniqueViolation(err) {
				return repository.ErrDuplicateKey
			}
			return fmt.Errorf("failed to create group: %w", err)
		}

		query = r.store.dialect.rebind(`UPDATE group_members SET group_name = ? WHERE group_name = ?`)
		if _, err := tx.ExecContext(ctx, query, newName, oldName); err != nil {
			return fmt.Errorf("failed to move members: %w", err)
		}

		query = r.store.dialect.rebind(`DELETE FROM social_groups WHERE name = ?`)
		result, err := tx.ExecContext(ctx, query, oldName)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return expectOneRow(result)
	})
}

// FindAll retrieves every group with its members
func (r *GroupRepository) FindAll(ctx context.Context) ([]*model.Group, error) {
	query := `
		SELECT g.name, gm.person_code
		FROM social_groups g
		LEFT JOIN group_members gm ON gm.group_name = g.name
		ORDER BY g.name, gm.person_code
	`

	rows, err := r.store.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	byName := make(map[string]*model.Group)
	for rows.Next() {
		var (
			name   string
			member sql.NullString
		)
		if err := rows.Scan(&name, &member); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}

		group, ok := byName[name]
		if !ok {
			group = &model.Group{Name: name}
			byName[name] = group
			groups = append(groups, group)
		}
		if member.Valid {
			group.Members = append(group.Members, member.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (r *GroupRepository) insertMembers(ctx context.Context, tx *sql.Tx, group *model.Group) error {
	query := r.store.dialect.rebind(`INSERT INTO group_members (group_name, person_code) VALUES (?, ?)`)
	seen := make(map[string]bool, len(group.Members))
	for _, code := range group.Members {
		// A failed statement aborts a Postgres transaction, so duplicates
		// are skipped here rather than caught as constraint errors.
		if seen[code] {
			continue
		}
		seen[code] = true
		if _, err := tx.ExecContext(ctx, query, group.Name, code); err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}
	}
	return nil
}
