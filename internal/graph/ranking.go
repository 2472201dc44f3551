package graph

import (
	"context"
	"fmt"
)

// Ranking queries return ok == false when there is nothing to rank.
// Ties go to the lexicographically smallest code or name.

// PersonWithLargestNumberOfFriends returns the code of the person with the
// most friends. Persons without friends take part with a count of zero.
func (e *Engine) PersonWithLargestNumberOfFriends(ctx context.Context) (string, bool, error) {
	persons, err := e.persons.FindAll(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to list persons: %w", err)
	}
	friendships, err := e.friendships.FindAll(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to list friendships: %w", err)
	}

	counts := make(map[string]int, len(persons))
	for _, p := range persons {
		counts[p.Code] = 0
	}
	for _, f := range friendships {
		if _, ok := counts[f.Key.Low]; ok {
			counts[f.Key.Low]++
		}
		if _, ok := counts[f.Key.High]; ok {
			counts[f.Key.High]++
		}
	}

	code, ok := maxByCount(counts)
	return code, ok, nil
}

// LargestGroup returns the name of the group with the most members.
// Empty groups take part with a count of zero.
func (e *Engine) LargestGroup(ctx context.Context) (string, bool, error) {
	groups, err := e.groups.FindAll(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to list groups: %w", err)
	}

	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.Name] = len(g.Members)
	}

	name, ok := maxByCount(counts)
	return name, ok, nil
}

// PersonInLargestNumberOfGroups returns the code of the person who is a
// member of the most groups. Only persons with at least one membership
// take part.
func (e *Engine) PersonInLargestNumberOfGroups(ctx context.Context) (string, bool, error) {
	groups, err := e.groups.FindAll(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to list groups: %w", err)
	}

	counts := make(map[string]int)
	for _, g := range groups {
		for _, code := range g.Members {
			counts[code]++
		}
	}

	code, ok := maxByCount(counts)
	return code, ok, nil
}

// maxByCount picks the key with the highest count, breaking ties by the
// smallest key.
func maxByCount(counts map[string]int) (string, bool) {
	var (
		best      string
		bestCount int
		found     bool
	)
	for key, count := range counts {
		if !found || count > bestCount || (count == bestCount && key < best) {
			best, bestCount, found = key, count, true
		}
	}
	return best, found
}
