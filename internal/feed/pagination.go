package feed

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fkhayef/social/internal/model"
)

// GetPaginatedUserPosts returns the ids of the posts written by authorCode,
// most recent first. pageNo starts at 1; a page holds at most pageLength ids.
func (e *Engine) GetPaginatedUserPosts(ctx context.Context, authorCode string, pageNo, pageLength int) ([]string, error) {
	author, err := e.persons.FindByID(ctx, authorCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("person %q: %w", authorCode, model.ErrNotFound)
	}

	all, err := e.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var posts []*model.Post
	for _, p := range all {
		if p.AuthorCode == authorCode {
			posts = append(posts, p)
		}
	}
	sortRecentFirst(posts)

	window := paginate(posts, pageNo, pageLength)
	ids := make([]string, 0, len(window))
	for _, p := range window {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// GetPaginatedFriendPosts returns the posts of authorCode's friends, most
// recent first, as "<author>:<post id>" keys. An unknown person has an
// empty feed; it is not an error.
func (e *Engine) GetPaginatedFriendPosts(ctx context.Context, authorCode string, pageNo, pageLength int) ([]string, error) {
	person, err := e.persons.FindByID(ctx, authorCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil {
		return []string{}, nil
	}

	var (
		friends []string
		all     []*model.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := e.friends.ListFriends(gctx, authorCode)
		if err != nil {
			return err
		}
		friends = f
		return nil
	})
	g.Go(func() error {
		p, err := e.posts.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		all = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	isFriend := make(map[string]bool, len(friends))
	for _, f := range friends {
		isFriend[f] = true
	}

	var posts []*model.Post
	for _, p := range all {
		if isFriend[p.AuthorCode] {
			posts = append(posts, p)
		}
	}
	sortRecentFirst(posts)

	window := paginate(posts, pageNo, pageLength)
	keys := make([]string, 0, len(window))
	for _, p := range window {
		keys = append(keys, p.FeedKey())
	}
	return keys, nil
}

// sortRecentFirst orders posts by timestamp descending. Posts with equal
// timestamps keep their relative order.
func sortRecentFirst(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp > posts[j].Timestamp
	})
}

// paginate returns the pageNo-th window of at most pageLength items.
// Out of range or non-positive arguments give an empty window.
func paginate[T any](items []T, pageNo, pageLength int) []T {
	if pageNo < 1 || pageLength < 1 {
		return nil
	}
	if len(items) == 0 || pageNo-1 > (len(items)-1)/pageLength {
		return nil
	}
	start := (pageNo - 1) * pageLength
	end := len(items)
	if pageLength < end-start {
		end = start + pageLength
	}
	return items[start:end]
}
