// Package feed publishes posts and builds chronological, paginated views of
// a person's own posts and of their friends' posts.
package feed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/repository"
)

// FriendLister resolves the friends of a person. It must fail with
// model.ErrNotFound when the person does not exist.
type FriendLister interface {
	ListFriends(ctx context.Context, code string) ([]string, error)
}

// Engine handles post and feed business logic
type Engine struct {
	persons repository.PersonRepository
	posts   repository.PostRepository
	friends FriendLister
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for new posts
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the time source used to stamp new posts
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator sets the function generating post identifiers
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// NewEngine creates a feed engine
func NewEngine(repos *repository.Repositories, friends FriendLister, opts ...Option) *Engine {
	e := &Engine{
		persons: repos.Persons,
		posts:   repos.Posts,
		friends: friends,
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
