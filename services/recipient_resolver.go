package services

import (
	"context"
	"fmt"
	"sort"
)

type RecipientResolver struct {
	store RecipientStore
}

func NewRecipientResolver(store RecipientStore) *RecipientResolver {
	return &RecipientResolver{store: store}
}

// Resolve returns the owner plus assignees (tasks) or members (projects), each user once, in ascending order
func (r *RecipientResolver) Resolve(ctx context.Context, c DeadlineCandidate) ([]uint, error) {
	ownerID := c.OwnerID
	if ownerID == 0 {
		id, err := r.lookupOwner(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("owner of %s %d: %w", c.Kind, c.EntityID, err)
		}
		ownerID = id
	}

	var (
		others []uint
		err    error
	)
	switch c.Kind {
	case KindTask:
		others, err = r.store.TaskAssigneeIDs(ctx, c.EntityID)
	case KindProject:
		others, err = r.store.ProjectMemberIDs(ctx, c.EntityID)
	default:
		return nil, fmt.Errorf("unknown entity kind %q", c.Kind)
	}
	if err != nil {
		return nil, err
	}

	return uniqueIDs(append([]uint{ownerID}, others...)), nil
}

func (r *RecipientResolver) lookupOwner(ctx context.Context, c DeadlineCandidate) (uint, error) {
	if c.Kind == KindProject {
		return r.store.ProjectOwnerID(ctx, c.EntityID)
	}
	return r.store.TaskOwnerID(ctx, c.EntityID)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
