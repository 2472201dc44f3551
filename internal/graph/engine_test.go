package graph

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

type EngineSuite struct {
	suite.Suite

	ctx    context.Context
	repos  *repository.Repositories
	engine *Engine
}

func TestEngine(t *testing.T) {
	suite.Run(t, &EngineSuite{})
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = repository.NewMemoryRepositories()
	s.engine = NewEngine(s.repos)
}

func (s *EngineSuite) addPersons(codes ...string) {
	for _, code := range codes {
		s.Require().NoError(s.engine.AddPerson(s.ctx, code, "Name "+code, "Surname "+code))
	}
}

func (s *EngineSuite) TestAddPerson() {
	s.addPersons("ada")

	person, err := s.engine.GetPerson(s.ctx, "ada")
	s.Require().NoError(err)
	s.Equal("ada Name ada Surname ada", person.String())

	err = s.engine.AddPerson(s.ctx, "ada", "Other", "Person")
	s.ErrorIs(err, model.ErrAlreadyExists)

	_, err = s.engine.GetPerson(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *EngineSuite) TestListPersonsSorted() {
	s.addPersons("carl", "ada", "bob")

	codes, err := s.engine.ListPersons(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"ada", "bob", "carl"}, codes)
}

func (s *EngineSuite) TestFriendshipIsSymmetric() {
	s.addPersons("ada", "bob")
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "ada", "bob"))

	adaFriends, err := s.engine.ListFriends(s.ctx, "ada")
	s.Require().NoError(err)
	s.Equal([]string{"bob"}, adaFriends)

	bobFriends, err := s.engine.ListFriends(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal([]string{"ada"}, bobFriends)
}

func (s *EngineSuite) TestFriendshipIsIdempotent() {
	s.addPersons("ada", "bob", "carl")
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "ada", "bob"))
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "ada", "bob"))
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "bob", "ada"))
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "carl", "ada"))

	friends, err := s.engine.ListFriends(s.ctx, "ada")
	s.Require().NoError(err)
	s.Equal([]string{"bob", "carl"}, friends)

	all, err := s.repos.Friendships.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *EngineSuite) TestSelfFriendshipIsNoop() {
	s.addPersons("ada")
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "ada", "ada"))

	friends, err := s.engine.ListFriends(s.ctx, "ada")
	s.Require().NoError(err)
	s.Empty(friends)
}

func (s *EngineSuite) TestFriendshipUnknownReference() {
	s.addPersons("real")

	s.ErrorIs(s.engine.AddFriendship(s.ctx, "ghost", "real"), model.ErrNotFound)
	s.ErrorIs(s.engine.AddFriendship(s.ctx, "real", "ghost"), model.ErrNotFound)
	s.ErrorIs(s.engine.AddFriendship(s.ctx, "ghost", "phantom"), model.ErrNotFound)

	_, err := s.engine.ListFriends(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrNotFound)

	friends, err := s.engine.ListFriends(s.ctx, "real")
	s.Require().NoError(err)
	s.Empty(friends)
}

func (s *EngineSuite) TestDuplicateGroup() {
	s.Require().NoError(s.engine.AddGroup(s.ctx, "X"))
	s.ErrorIs(s.engine.AddGroup(s.ctx, "X"), model.ErrAlreadyExists)
}

func (s *EngineSuite) TestDeleteGroup() {
	s.ErrorIs(s.engine.DeleteGroup(s.ctx, "X"), model.ErrNotFound)

	s.Require().NoError(s.engine.AddGroup(s.ctx, "X"))
	s.Require().NoError(s.engine.DeleteGroup(s.ctx, "X"))

	groups, err := s.engine.ListGroups(s.ctx)
	s.Require().NoError(err)
	s.Empty(groups)
}

func (s *EngineSuite) TestRenamePreservesMembership() {
	s.addPersons("p1", "p2")
	s.Require().NoError(s.engine.AddGroup(s.ctx, "G"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "p2", "G"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "p1", "G"))

	s.Require().NoError(s.engine.UpdateGroupName(s.ctx, "G", "G2"))

	members, err := s.engine.ListMembers(s.ctx, "G2")
	s.Require().NoError(err)
	s.Equal([]string{"p1", "p2"}, members)

	groups, err := s.engine.ListGroups(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"G2"}, groups)
}

func (s *EngineSuite) TestRenameErrors() {
	s.Require().NoError(s.engine.AddGroup(s.ctx, "A"))
	s.Require().NoError(s.engine.AddGroup(s.ctx, "B"))

	s.ErrorIs(s.engine.UpdateGroupName(s.ctx, "missing", "C"), model.ErrNotFound)
	s.ErrorIs(s.engine.UpdateGroupName(s.ctx, "A", "B"), model.ErrAlreadyExists)

	groups, err := s.engine.ListGroups(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"A", "B"}, groups)
}

// conflictingGroups reports a duplicate key when a group named taken is
// saved, as when another caller creates it first.
type conflictingGroups struct {
	repository.GroupRepository
	taken string
}

func (g *conflictingGroups) Save(ctx context.Context, group *model.Group) error {
	if group.Name == g.taken {
		return repository.ErrDuplicateKey
	}
	return g.GroupRepository.Save(ctx, group)
}

func (s *EngineSuite) TestFailedRenameKeepsGroup() {
	s.repos.Groups = &conflictingGroups{GroupRepository: s.repos.Groups, taken: "G2"}
	s.engine = NewEngine(s.repos)

	s.addPersons("a")
	s.Require().NoError(s.engine.AddGroup(s.ctx, "G"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "a", "G"))

	s.ErrorIs(s.engine.UpdateGroupName(s.ctx, "G", "G2"), model.ErrAlreadyExists)

	groups, err := s.engine.ListGroups(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"G"}, groups)

	members, err := s.engine.ListMembers(s.ctx, "G")
	s.Require().NoError(err)
	s.Equal([]string{"a"}, members)
}

func (s *EngineSuite) TestAddPersonToGroup() {
	s.addPersons("ada")
	s.Require().NoError(s.engine.AddGroup(s.ctx, "chess"))

	s.ErrorIs(s.engine.AddPersonToGroup(s.ctx, "ghost", "chess"), model.ErrNotFound)
	s.ErrorIs(s.engine.AddPersonToGroup(s.ctx, "ada", "missing"), model.ErrNotFound)

	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "ada", "chess"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "ada", "chess"))

	members, err := s.engine.ListMembers(s.ctx, "chess")
	s.Require().NoError(err)
	s.Equal([]string{"ada"}, members)
}

func (s *EngineSuite) TestListMembersOfUnknownGroupIsEmpty() {
	members, err := s.engine.ListMembers(s.ctx, "missing")
	s.Require().NoError(err)
	s.NotNil(members)
	s.Empty(members)
}

func (s *EngineSuite) TestRankingsOnEmptyRepository() {
	_, ok, err := s.engine.PersonWithLargestNumberOfFriends(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	_, ok, err = s.engine.LargestGroup(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	_, ok, err = s.engine.PersonInLargestNumberOfGroups(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *EngineSuite) TestPersonWithLargestNumberOfFriendsIsDeterministic() {
	s.addPersons("zed", "amy")
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "zed", "amy"))

	first, ok, err := s.engine.PersonWithLargestNumberOfFriends(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("amy", first)

	for i := 0; i < 10; i++ {
		again, _, err := s.engine.PersonWithLargestNumberOfFriends(s.ctx)
		s.Require().NoError(err)
		s.Equal(first, again)
	}
}

func (s *EngineSuite) TestPersonWithLargestNumberOfFriends() {
	s.addPersons("a", "b", "c", "d")
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "c", "a"))
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "c", "b"))
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "c", "d"))
	s.Require().NoError(s.engine.AddFriendship(s.ctx, "a", "b"))

	code, ok, err := s.engine.PersonWithLargestNumberOfFriends(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("c", code)
}

func (s *EngineSuite) TestLonelyPersonStillRanks() {
	s.addPersons("solo")

	code, ok, err := s.engine.PersonWithLargestNumberOfFriends(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("solo", code)
}

func (s *EngineSuite) TestGroupRankings() {
	s.addPersons("ada", "bob", "carl")
	for _, g := range []string{"chess", "go", "poker"} {
		s.Require().NoError(s.engine.AddGroup(s.ctx, g))
	}
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "ada", "go"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "bob", "go"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "carl", "chess"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "carl", "poker"))
	s.Require().NoError(s.engine.AddPersonToGroup(s.ctx, "bob", "poker"))

	largest, ok, err := s.engine.LargestGroup(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	// go and poker both have two members
	s.Equal("go", largest)

	busiest, ok, err := s.engine.PersonInLargestNumberOfGroups(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	// bob and carl both belong to two groups
	s.Equal("bob", busiest)
}

func (s *EngineSuite) TestPersonInLargestNumberOfGroupsIgnoresEmptyGroups() {
	s.Require().NoError(s.engine.AddGroup(s.ctx, "empty"))

	_, ok, err := s.engine.PersonInLargestNumberOfGroups(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	name, ok, err := s.engine.LargestGroup(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("empty", name)
}

func TestMaxByCount(t *testing.T) {
	_, ok := maxByCount(nil)
	assert.False(t, ok)

	best, ok := maxByCount(map[string]int{"b": 2, "a": 2, "c": 1})
	require.True(t, ok)
	assert.Equal(t, "a", best)

	best, ok = maxByCount(map[string]int{"z": 0})
	require.True(t, ok)
	assert.Equal(t, "z", best)
}

func TestConcurrentFriendshipsAreSymmetric(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(repository.NewMemoryRepositories())

	const n = 20
	require.NoError(t, engine.AddPerson(ctx, "hub", "Hub", "Person"))
	for i := 0; i < n; i++ {
		require.NoError(t, engine.AddPerson(ctx, fmt.Sprintf("p%02d", i), "Name", "Surname"))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 4*n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("p%02d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- engine.AddFriendship(ctx, code, "hub")
		}()
		go func() {
			defer wg.Done()
			// Once one side sees the friendship the other side must too.
			friends, err := engine.ListFriends(ctx, code)
			if err != nil {
				errs <- err
				return
			}
			if len(friends) == 0 {
				return
			}
			hubFriends, err := engine.ListFriends(ctx, "hub")
			if err != nil {
				errs <- err
				return
			}
			if !assert.Contains(t, hubFriends, code) {
				errs <- fmt.Errorf("%s sees hub but hub does not see %s", code, code)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	hubFriends, err := engine.ListFriends(ctx, "hub")
	require.NoError(t, err)
	assert.Len(t, hubFriends, n)
	for i := 0; i < n; i++ {
		friends, err := engine.ListFriends(ctx, fmt.Sprintf("p%02d", i))
		require.NoError(t, err)
		assert.Equal(t, []string{"hub"}, friends)
	}
}
