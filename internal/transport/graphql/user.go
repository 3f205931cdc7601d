package graphql

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/deepthoughts/backend/internal/domain"
	"github.com/deepthoughts/backend/internal/transport/graphql/dataloader"
)

// userResolver resolves the User type. Friend and thought expansion goes
// through the request's dataloaders so list queries stay at one query per
// relation.
type userResolver struct {
	u *domain.User
}

func newUserResolvers(users []domain.User) []*userResolver {
	out := make([]*userResolver, 0, len(users))
	for i := range users {
		out = append(out, &userResolver{u: &users[i]})
	}
	return out
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.u.ID.String())
}

func (r *userResolver) Username() string {
	return r.u.Username
}

func (r *userResolver) Email() string {
	return r.u.Email
}

func (r *userResolver) CreatedAt() string {
	return r.u.CreatedAt.Format(time.RFC3339)
}

func (r *userResolver) Friends(ctx context.Context) ([]*userResolver, error) {
	friends, err := dataloader.FromContext(ctx).FriendsByUserID.Load(ctx, r.u.ID)()
	if err != nil {
		return nil, err
	}
	return newUserResolvers(friends), nil
}

func (r *userResolver) FriendCount(ctx context.Context) (int32, error) {
	friends, err := dataloader.FromContext(ctx).FriendsByUserID.Load(ctx, r.u.ID)()
	if err != nil {
		return 0, err
	}
	return int32(len(friends)), nil
}

func (r *userResolver) Thoughts(ctx context.Context) ([]*thoughtResolver, error) {
	thoughts, err := dataloader.FromContext(ctx).ThoughtsByUserID.Load(ctx, r.u.ID)()
	if err != nil {
		return nil, err
	}
	return newThoughtResolvers(thoughts), nil
}
