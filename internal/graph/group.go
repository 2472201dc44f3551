package graph

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/internal/repository"
)

// AddGroup creates an empty group
func (e *Engine) AddGroup(ctx context.Context, name string) error {
	return e.createGroup(ctx, &model.Group{Name: name})
}

// DeleteGroup removes a group
func (e *Engine) DeleteGroup(ctx context.Context, name string) error {
	group, err := e.getGroup(ctx, name)
	if err != nil {
		return err
	}

	if err := e.groups.Delete(ctx, group); err != nil {
		if errors.Is(err, repository.ErrMissingKey) {
			return fmt.Errorf("group %q: %w", name, model.ErrNotFound)
		}
		return fmt.Errorf("failed to delete group: %w", err)
	}

	e.logger.Info("group deleted", zap.String("group", name))
	return nil
}

// UpdateGroupName renames a group, keeping its members. A failed rename
// leaves the group under oldName.
func (e *Engine) UpdateGroupName(ctx context.Context, oldName, newName string) error {
	group, err := e.getGroup(ctx, oldName)
	if err != nil {
		return err
	}

	taken, err := e.groups.FindByID(ctx, newName)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	if taken != nil {
		return fmt.Errorf("group %q: %w", newName, model.ErrAlreadyExists)
	}

	if renamer, ok := e.groups.(repository.GroupRenamer); ok {
		err = e.renameInPlace(ctx, renamer, oldName, newName)
	} else {
		err = e.moveGroup(ctx, group, newName)
	}
	if err != nil {
		return err
	}

	e.logger.Info("group renamed",
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int("members", len(group.Members)),
	)
	return nil
}

func (e *Engine) renameInPlace(ctx context.Context, renamer repository.GroupRenamer, oldName, newName string) error {
	err := renamer.Rename(ctx, oldName, newName)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrMissingKey):
		return fmt.Errorf("group %q: %w", oldName, model.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateKey):
		return fmt.Errorf("group %q: %w", newName, model.ErrAlreadyExists)
	default:
		return fmt.Errorf("failed to rename group: %w", err)
	}
}

// moveGroup deletes group and recreates its members under newName,
// putting the original back if the new group cannot be created.
func (e *Engine) moveGroup(ctx context.Context, group *model.Group, newName string) error {
	if err := e.groups.Delete(ctx, group); err != nil {
		if errors.Is(err, repository.ErrMissingKey) {
			return fmt.Errorf("group %q: %w", group.Name, model.ErrNotFound)
		}
		return fmt.Errorf("failed to delete group: %w", err)
	}

	createErr := e.createGroup(ctx, &model.Group{Name: newName, Members: slices.Clone(group.Members)})
	if createErr == nil {
		return nil
	}

	if err := e.groups.Save(ctx, group); err != nil {
		e.logger.Error("failed to restore group after rename",
			zap.String("group", group.Name),
			zap.Strings("members", group.Members),
			zap.Error(err),
		)
		return errors.Join(createErr, fmt.Errorf("failed to restore group %q: %w", group.Name, err))
	}
	return createErr
}

// AddPersonToGroup adds a person to a group. Adding an existing member is
// a no-op.
func (e *Engine) AddPersonToGroup(ctx context.Context, code, groupName string) error {
	if _, err := e.GetPerson(ctx, code); err != nil {
		return err
	}
	group, err := e.getGroup(ctx, groupName)
	if err != nil {
		return err
	}

	i, found := slices.BinarySearch(group.Members, code)
	if found {
		return nil
	}
	group.Members = slices.Insert(group.Members, i, code)

	if err := e.groups.Update(ctx, group); err != nil {
		if errors.Is(err, repository.ErrMissingKey) {
			return fmt.Errorf("group %q: %w", groupName, model.ErrNotFound)
		}
		return fmt.Errorf("failed to update group: %w", err)
	}

	e.logger.Debug("member added", zap.String("group", groupName), zap.String("code", code))
	return nil
}

// ListGroups returns the names of all groups, sorted
func (e *Engine) ListGroups(ctx context.Context) ([]string, error) {
	groups, err := e.groups.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ListMembers returns the member codes of a group. An unknown group has
// no members; it is not an error.
func (e *Engine) ListMembers(ctx context.Context, groupName string) ([]string, error) {
	group, err := e.groups.FindByID(ctx, groupName)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return []string{}, nil
	}

	members := slices.Clone(group.Members)
	sort.Strings(members)
	if members == nil {
		members = []string{}
	}
	return members, nil
}

func (e *Engine) getGroup(ctx context.Context, name string) (*model.Group, error) {
	group, err := e.groups.FindByID(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %q: %w", name, model.ErrNotFound)
	}
	sort.Strings(group.Members)
	return group, nil
}

func (e *Engine) createGroup(ctx context.Context, group *model.Group) error {
	existing, err := e.groups.FindByID(ctx, group.Name)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("group %q: %w", group.Name, model.ErrAlreadyExists)
	}

	if err := e.groups.Save(ctx, group); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return fmt.Errorf("group %q: %w", group.Name, model.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to save group: %w", err)
	}

	e.logger.Info("group added", zap.String("group", group.Name))
	return nil
}
