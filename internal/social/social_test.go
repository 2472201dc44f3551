package social

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/social/internal/database"
	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
	"github.com/fkhayef/social/internal/repository/sqlstore"
)

// tickingClock advances one millisecond per call so posts never share a timestamp
func tickingClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func newSocial(t *testing.T) *Social {
	t.Helper()
	return New(repository.NewMemoryRepositories(), WithClock(tickingClock()))
}

func openSQLiteRepositories(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	store, err := sqlstore.New(context.Background(), db, sqlstore.SQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Repositories()
}

func TestSocialScenario(t *testing.T) {
	stores := map[string]func(t *testing.T) *repository.Repositories{
		"memory": func(*testing.T) *repository.Repositories { return repository.NewMemoryRepositories() },
		"sqlite": openSQLiteRepositories,
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			runScenario(t, New(open(t), WithClock(tickingClock())))
		})
	}
}

func runScenario(t *testing.T, s *Social) {
	ctx := context.Background()

	require.NoError(t, s.AddPerson(ctx, "alice", "Alice", "Liddell"))
	require.NoError(t, s.AddPerson(ctx, "bob", "Bob", "Builder"))
	require.NoError(t, s.AddPerson(ctx, "carol", "Carol", "Danvers"))

	details, err := s.GetPerson(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice Alice Liddell", details)

	require.NoError(t, s.AddFriendship(ctx, "alice", "bob"))
	require.NoError(t, s.AddFriendship(ctx, "carol", "alice"))

	friends, err := s.ListFriends(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, friends)

	winner, ok, err := s.PersonWithLargestNumberOfFriends(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", winner)

	require.NoError(t, s.AddGroup(ctx, "book-club"))
	require.NoError(t, s.AddPersonToGroup(ctx, "bob", "book-club"))
	require.NoError(t, s.AddPersonToGroup(ctx, "alice", "book-club"))
	require.NoError(t, s.UpdateGroupName(ctx, "book-club", "readers"))

	members, err := s.ListMembers(ctx, "readers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, members)

	members, err = s.ListMembers(ctx, "book-club")
	require.NoError(t, err)
	assert.Empty(t, members)

	largest, ok, err := s.LargestGroup(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "readers", largest)

	first, err := s.Post(ctx, "bob", "hello")
	require.NoError(t, err)
	second, err := s.Post(ctx, "carol", "hi there")
	require.NoError(t, err)

	content, err := s.GetPostContent(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "hi there", content)

	ts1, err := s.GetTimestamp(ctx, first)
	require.NoError(t, err)
	ts2, err := s.GetTimestamp(ctx, second)
	require.NoError(t, err)
	assert.Less(t, ts1, ts2)

	feed, err := s.GetPaginatedFriendPosts(ctx, "alice", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol:" + second, "bob:" + first}, feed)

	own, err := s.GetPaginatedUserPosts(ctx, "bob", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{first}, own)

	third, err := s.Post(ctx, "bob", "again")
	require.NoError(t, err)
	feed, err = s.GetPaginatedFriendPosts(ctx, "alice", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob:" + first}, feed)
	own, err = s.GetPaginatedUserPosts(ctx, "bob", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{third}, own)

	require.NoError(t, s.AddGroup(ctx, "writers"))
	require.NoError(t, s.AddPersonToGroup(ctx, "bob", "writers"))
	assert.ErrorIs(t, s.UpdateGroupName(ctx, "writers", "readers"), model.ErrAlreadyExists)

	members, err = s.ListMembers(ctx, "writers")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, members)

	most, ok, err := s.PersonInLargestNumberOfGroups(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bob", most)

	groups, err := s.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"readers", "writers"}, groups)
}

func TestSocialErrors(t *testing.T) {
	ctx := context.Background()
	s := newSocial(t)
	require.NoError(t, s.AddPerson(ctx, "alice", "Alice", "Liddell"))

	assert.ErrorIs(t, s.AddPerson(ctx, "alice", "Other", "Alice"), model.ErrAlreadyExists)
	assert.ErrorIs(t, s.AddFriendship(ctx, "alice", "ghost"), model.ErrNotFound)
	assert.ErrorIs(t, s.DeleteGroup(ctx, "nowhere"), model.ErrNotFound)

	_, err := s.GetPerson(ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.GetPostContent(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Post(ctx, "ghost", "boo")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.True(t, strings.Contains(err.Error(), "ghost"))
}

func TestSocialEmptyRankings(t *testing.T) {
	ctx := context.Background()
	s := newSocial(t)

	_, ok, err := s.PersonWithLargestNumberOfFriends(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.LargestGroup(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.PersonInLargestNumberOfGroups(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
