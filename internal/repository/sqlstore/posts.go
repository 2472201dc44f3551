package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// PostRepository handles post persistence
type PostRepository struct {
	store *Store
}

var _ repository.PostRepository = (*PostRepository)(nil)

// FindByID retrieves a post by id
func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT id, author_code, content, created_at FROM posts WHERE id = ?`

	post := &model.Post{}
	err := r.store.queryRow(ctx, query, id).Scan(&post.ID, &post.AuthorCode, &post.Content, &post.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// Save inserts a new post
func (r *PostRepository) Save(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (id, author_code, content, created_at) VALUES (?, ?, ?, ?)`

	if _, err := r.store.exec(ctx, query, post.ID, post.AuthorCode, post.Content, post.Timestamp); err != nil {
		if r.store.dialect.isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// Update modifies an existing post
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET author_code = ?, content = ?, created_at = ? WHERE id = ?`

	result, err := r.store.exec(ctx, query, post.AuthorCode, post.Content, post.Timestamp, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return expectOneRow(result)
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, post *model.Post) error {
	result, err := r.store.exec(ctx, `DELETE FROM posts WHERE id = ?`, post.ID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return expectOneRow(result)
}

// FindAll retrieves every post, oldest first
func (r *PostRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	query := `
		SELECT id, author_code, content, created_at
		FROM posts
		ORDER BY created_at, id
	`

	rows, err := r.store.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(&post.ID, &post.AuthorCode, &post.Content, &post.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}
