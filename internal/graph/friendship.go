package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// AddFriendship makes two persons friends of each other.
//
// Both directions are stored as a single record, so the relation never
// appears on one side only. Calling it again for the same pair, or with
// the same code twice, has no effect.
func (e *Engine) AddFriendship(ctx context.Context, codeA, codeB string) error {
	if _, err := e.GetPerson(ctx, codeA); err != nil {
		return err
	}
	if _, err := e.GetPerson(ctx, codeB); err != nil {
		return err
	}
	if codeA == codeB {
		return nil
	}

	key := model.NewFriendshipKey(codeA, codeB)
	existing, err := e.friendships.FindByID(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to get friendship: %w", err)
	}
	if existing != nil {
		return nil
	}

	friendship := &model.Friendship{Key: key, CreatedAt: e.now().UnixMilli()}
	if err := e.friendships.Save(ctx, friendship); err != nil {
		// Lost a race against an identical request.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("failed to save friendship: %w", err)
	}

	e.logger.Info("friendship added",
		zap.String("low", key.Low),
		zap.String("high", key.High),
	)
	return nil
}

// ListFriends returns the codes of a person's friends, sorted
func (e *Engine) ListFriends(ctx context.Context, code string) ([]string, error) {
	if _, err := e.GetPerson(ctx, code); err != nil {
		return nil, err
	}

	friendships, err := e.friendships.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	friends := make([]string, 0)
	for _, f := range friendships {
		if other, ok := f.Key.Other(code); ok {
			friends = append(friends, other)
		}
	}
	sort.Strings(friends)
	return friends, nil
}
