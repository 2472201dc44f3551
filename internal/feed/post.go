package feed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// Post publishes text on behalf of authorCode and returns the new post id.
// Unknown authors are rejected with model.ErrNotFound.
func (e *Engine) Post(ctx context.Context, authorCode, text string) (string, error) {
	author, err := e.persons.FindByID(ctx, authorCode)
	if err != nil {
		return "", fmt.Errorf("failed to get person: %w", err)
	}
	if author == nil {
		return "", fmt.Errorf("person %q: %w", authorCode, model.ErrNotFound)
	}

	post := &model.Post{
		ID:         e.newID(),
		AuthorCode: author.Code,
		Content:    text,
		Timestamp:  e.now().UnixMilli(),
	}
	if err := e.posts.Save(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", fmt.Errorf("post %q: %w", post.ID, model.ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to save post: %w", err)
	}

	e.logger.Info("post published",
		zap.String("author", post.AuthorCode),
		zap.String("post_id", post.ID),
		zap.Int64("timestamp", post.Timestamp),
	)
	return post.ID, nil
}

// GetPost retrieves a post by id
func (e *Engine) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := e.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %q: %w", id, model.ErrNotFound)
	}
	return post, nil
}

// GetPostContent returns the text of a post
func (e *Engine) GetPostContent(ctx context.Context, id string) (string, error) {
	post, err := e.GetPost(ctx, id)
	if err != nil {
		return "", err
	}
	return post.Content, nil
}

// GetTimestamp returns the creation time of a post in milliseconds since epoch
func (e *Engine) GetTimestamp(ctx context.Context, id string) (int64, error) {
	post, err := e.GetPost(ctx, id)
	if err != nil {
		return 0, err
	}
	return post.Timestamp, nil
}
