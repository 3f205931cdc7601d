// Package dataloader batches the per-user friend and thought lookups that
// GraphQL field resolution would otherwise issue one query at a time.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	thoughtrepo "github.com/deepthoughts/backend/internal/adapter/postgres/thought"
	userrepo "github.com/deepthoughts/backend/internal/adapter/postgres/user"
	"github.com/deepthoughts/backend/internal/domain"
)

type friendRepo interface {
	ListFriendsByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]userrepo.FriendWithUserID, error)
}

type thoughtRepo interface {
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]thoughtrepo.ThoughtWithUserID, error)
}

// Repos bundles the repositories the loaders read from.
type Repos struct {
	Friends  friendRepo
	Thoughts thoughtRepo
}

// Loaders carries one batched loader per expanded relation. A fresh set is
// created per request so nothing is cached across requests.
type Loaders struct {
	FriendsByUserID  *dataloader.Loader[uuid.UUID, []domain.User]
	ThoughtsByUserID *dataloader.Loader[uuid.UUID, []domain.Thought]
}

// New creates a set of request-scoped loaders.
func New(repos Repos) *Loaders {
	return &Loaders{
		FriendsByUserID:  newLoader(batchFriends(repos.Friends)),
		ThoughtsByUserID: newLoader(batchThoughts(repos.Thoughts)),
	}
}

func newLoader[V any](fn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(fn,
		dataloader.WithWait[uuid.UUID, V](2*time.Millisecond),
		dataloader.WithBatchCapacity[uuid.UUID, V](100),
	)
}

func batchFriends(repo friendRepo) dataloader.BatchFunc[uuid.UUID, []domain.User] {
	return func(ctx context.Context, userIDs []uuid.UUID) []*dataloader.Result[[]domain.User] {
		results := make([]*dataloader.Result[[]domain.User], len(userIDs))

		rows, err := repo.ListFriendsByUserIDs(ctx, userIDs)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[[]domain.User]{Error: err}
			}
			return results
		}

		byUser := make(map[uuid.UUID][]domain.User, len(userIDs))
		for _, row := range rows {
			byUser[row.UserID] = append(byUser[row.UserID], row.User)
		}

		for i, id := range userIDs {
			friends := byUser[id]
			if friends == nil {
				friends = []domain.User{}
			}
			results[i] = &dataloader.Result[[]domain.User]{Data: friends}
		}
		return results
	}
}

func batchThoughts(repo thoughtRepo) dataloader.BatchFunc[uuid.UUID, []domain.Thought] {
	return func(ctx context.Context, userIDs []uuid.UUID) []*dataloader.Result[[]domain.Thought] {
		results := make([]*dataloader.Result[[]domain.Thought], len(userIDs))

		rows, err := repo.ListByUserIDs(ctx, userIDs)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[[]domain.Thought]{Error: err}
			}
			return results
		}

		byUser := make(map[uuid.UUID][]domain.Thought, len(userIDs))
		for _, row := range rows {
			byUser[row.UserID] = append(byUser[row.UserID], row.Thought)
		}

		for i, id := range userIDs {
			thoughts := byUser[id]
			if thoughts == nil {
				thoughts = []domain.Thought{}
			}
			results[i] = &dataloader.Result[[]domain.Thought]{Data: thoughts}
		}
		return results
	}
}
