// Package social is the entry point to the social network: it wires the
// graph and feed engines over a set of repositories and exposes every
// operation with primitive results.
package social

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/feed"
	"github.com/fkhayef/social/internal/graph"
	"github.com/fkhayef/social/internal/repository"
)

// Social is the facade over the social graph and the feed
type Social struct {
	graph *graph.Engine
	feed  *feed.Engine
}

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Social facade
type Option func(*options)

// WithLogger sets the logger handed to both engines
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the time source handed to both engines
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a facade over repos
func New(repos *repository.Repositories, opts ...Option) *Social {
	o := &options{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	g := graph.NewEngine(repos,
		graph.WithLogger(o.logger.Named("graph")),
		graph.WithClock(o.now),
	)
	f := feed.NewEngine(repos, g,
		feed.WithLogger(o.logger.Named("feed")),
		feed.WithClock(o.now),
	)
	return &Social{graph: g, feed: f}
}

// AddPerson creates a new account. Fails with model.ErrAlreadyExists on a
// duplicate code.
func (s *Social) AddPerson(ctx context.Context, code, name, surname string) error {
	return s.graph.AddPerson(ctx, code, name, surname)
}

// GetPerson returns code, name and surname separated by blanks
func (s *Social) GetPerson(ctx context.Context, code string) (string, error) {
	person, err := s.graph.GetPerson(ctx, code)
	if err != nil {
		return "", err
	}
	return person.String(), nil
}

// ListPersons returns every person code
func (s *Social) ListPersons(ctx context.Context) ([]string, error) {
	return s.graph.ListPersons(ctx)
}

// AddFriendship makes two persons friends of each other
func (s *Social) AddFriendship(ctx context.Context, codeA, codeB string) error {
	return s.graph.AddFriendship(ctx, codeA, codeB)
}

// ListFriends returns the friend codes of a person
func (s *Social) ListFriends(ctx context.Context, code string) ([]string, error) {
	return s.graph.ListFriends(ctx, code)
}

// AddGroup creates a group
func (s *Social) AddGroup(ctx context.Context, name string) error {
	return s.graph.AddGroup(ctx, name)
}

// DeleteGroup removes a group
func (s *Social) DeleteGroup(ctx context.Context, name string) error {
	return s.graph.DeleteGroup(ctx, name)
}

// UpdateGroupName renames a group, keeping its members
func (s *Social) UpdateGroupName(ctx context.Context, oldName, newName string) error {
	return s.graph.UpdateGroupName(ctx, oldName, newName)
}

// ListGroups returns every group name
func (s *Social) ListGroups(ctx context.Context) ([]string, error) {
	return s.graph.ListGroups(ctx)
}

// AddPersonToGroup adds a person to a group
func (s *Social) AddPersonToGroup(ctx context.Context, code, groupName string) error {
	return s.graph.AddPersonToGroup(ctx, code, groupName)
}

// ListMembers returns the member codes of a group, or none for an unknown group
func (s *Social) ListMembers(ctx context.Context, groupName string) ([]string, error) {
	return s.graph.ListMembers(ctx, groupName)
}

// PersonWithLargestNumberOfFriends returns the most connected person
func (s *Social) PersonWithLargestNumberOfFriends(ctx context.Context) (string, bool, error) {
	return s.graph.PersonWithLargestNumberOfFriends(ctx)
}

// LargestGroup returns the group with the most members
func (s *Social) LargestGroup(ctx context.Context) (string, bool, error) {
	return s.graph.LargestGroup(ctx)
}

// PersonInLargestNumberOfGroups returns the person in the most groups
func (s *Social) PersonInLargestNumberOfGroups(ctx context.Context) (string, bool, error) {
	return s.graph.PersonInLargestNumberOfGroups(ctx)
}

// Post publishes a post and returns its id
func (s *Social) Post(ctx context.Context, authorCode, text string) (string, error) {
	return s.feed.Post(ctx, authorCode, text)
}

// GetPostContent returns the text of a post
func (s *Social) GetPostContent(ctx context.Context, id string) (string, error) {
	return s.feed.GetPostContent(ctx, id)
}

// GetTimestamp returns the creation time of a post in milliseconds since epoch
func (s *Social) GetTimestamp(ctx context.Context, id string) (int64, error) {
	return s.feed.GetTimestamp(ctx, id)
}

// GetPaginatedUserPosts returns one page of a person's post ids, newest first
func (s *Social) GetPaginatedUserPosts(ctx context.Context, authorCode string, pageNo, pageLength int) ([]string, error) {
	return s.feed.GetPaginatedUserPosts(ctx, authorCode, pageNo, pageLength)
}

// GetPaginatedFriendPosts returns one page of "<author>:<post id>" keys
// from a person's friends, newest first
func (s *Social) GetPaginatedFriendPosts(ctx context.Context, authorCode string, pageNo, pageLength int) ([]string, error) {
	return s.feed.GetPaginatedFriendPosts(ctx, authorCode, pageNo, pageLength)
}
