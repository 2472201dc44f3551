package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/fkhayef/social/internal/model"
)

// Memory is a Repository kept in process memory. It is safe for concurrent
// use and hands out copies, so callers must Update to change stored state.
// FindAll returns entities in insertion order.
type Memory[K comparable, T any] struct {
	mut      sync.RWMutex
	entities map[K]T
	order    []K
	key      func(*T) K
	clone    func(T) T
}

// NewMemory creates an empty in-memory repository. key extracts the
// identity of an entity; clone, if not nil, deep-copies an entity.
func NewMemory[K comparable, T any](key func(*T) K, clone func(T) T) *Memory[K, T] {
	if clone == nil {
		clone = func(t T) T { return t }
	}
	return &Memory[K, T]{
		entities: make(map[K]T),
		key:      key,
		clone:    clone,
	}
}

// FindByID returns a copy of the entity stored under id
func (m *Memory[K, T]) FindByID(ctx context.Context, id K) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mut.RLock()
	defer m.mut.RUnlock()

	entity, found := m.entities[id]
	if !found {
		return nil, nil
	}
	c := m.clone(entity)
	return &c, nil
}

// Save stores a new entity
func (m *Memory[K, T]) Save(ctx context.Context, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mut.Lock()
	defer m.mut.Unlock()

	id := m.key(entity)
	if _, found := m.entities[id]; found {
		return ErrDuplicateKey
	}
	m.entities[id] = m.clone(*entity)
	m.order = append(m.order, id)
	return nil
}

// Update replaces a stored entity
func (m *Memory[K, T]) Update(ctx context.Context, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mut.Lock()
	defer m.mut.Unlock()

	id := m.key(entity)
	if _, found := m.entities[id]; !found {
		return ErrMissingKey
	}
	m.entities[id] = m.clone(*entity)
	return nil
}

// Delete removes a stored entity
func (m *Memory[K, T]) Delete(ctx context.Context, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mut.Lock()
	defer m.mut.Unlock()

	id := m.key(entity)
	if _, found := m.entities[id]; !found {
		return ErrMissingKey
	}
	delete(m.entities, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return nil
}

// FindAll returns copies of every stored entity
func (m *Memory[K, T]) FindAll(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mut.RLock()
	defer m.mut.RUnlock()

	all := make([]*T, 0, len(m.order))
	for _, id := range m.order {
		c := m.clone(m.entities[id])
		all = append(all, &c)
	}
	return all, nil
}

// NewMemoryRepositories creates an empty in-memory repository per entity type
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Persons: NewMemory(func(p *model.Person) string { return p.Code }, nil),
		Groups: NewMemory(func(g *model.Group) string { return g.Name }, func(g model.Group) model.Group {
			g.Members = slices.Clone(g.Members)
			return g
		}),
		Posts:       NewMemory(func(p *model.Post) string { return p.ID }, nil),
		Friendships: NewMemory(func(f *model.Friendship) model.FriendshipKey { return f.Key }, nil),
	}
}
