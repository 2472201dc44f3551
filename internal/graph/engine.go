// Package graph maintains the social graph: persons, symmetric friendships
// and group membership, plus the ranking queries over them.
package graph

import (
	"time"

	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/repository"
)

// Engine handles social graph business logic
type Engine struct {
	persons     repository.PersonRepository
	groups      repository.GroupRepository
	friendships repository.FriendshipRepository
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for mutations
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the time source used to stamp friendships
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a graph engine over the given repositories
func NewEngine(repos *repository.Repositories, opts ...Option) *Engine {
	e := &Engine{
		persons:     repos.Persons,
		groups:      repos.Groups,
		friendships: repos.Friendships,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
