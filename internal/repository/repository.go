// Package repository defines the persistence contract used by the social
// graph and feed engines, plus an in-memory implementation.
package repository

import (
	"context"
	"errors"

	"github.com/fkhayef/social/internal/model"
)

// Repository errors
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrMissingKey   = errors.New("missing key")
)

// Repository stores entities of type T keyed by K.
//
// FindByID returns nil, nil when no entity has the given key.
type Repository[K comparable, T any] interface {
	FindByID(ctx context.Context, id K) (*T, error)
	Save(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	FindAll(ctx context.Context) ([]*T, error)
}

// PersonRepository stores persons keyed by code
type PersonRepository = Repository[string, model.Person]

// GroupRepository stores groups keyed by name
type GroupRepository = Repository[string, model.Group]

// PostRepository stores posts keyed by id
type PostRepository = Repository[string, model.Post]

// FriendshipRepository stores friendships keyed by their canonical pair
type FriendshipRepository = Repository[model.FriendshipKey, model.Friendship]

// GroupRenamer is implemented by group repositories that can move a group
// and its members to a new name in one step. Rename fails with
// ErrMissingKey when oldName is absent and ErrDuplicateKey when newName is
// taken, leaving the stored groups unchanged.
type GroupRenamer interface {
	Rename(ctx context.Context, oldName, newName string) error
}

// Repositories bundles one repository per entity type
type Repositories struct {
	Persons     PersonRepository
	Groups      GroupRepository
	Posts       PostRepository
	Friendships FriendshipRepository
}
