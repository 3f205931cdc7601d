// Package graphql implements the GraphQL API: the schema, the root resolver
// and the per-type resolvers.
package graphql

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/deepthoughts/backend/internal/config"
	"github.com/deepthoughts/backend/internal/domain"
	"github.com/deepthoughts/backend/internal/service/auth"
)

type authService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*auth.AuthResult, error)
	Login(ctx context.Context, in auth.LoginInput) (*auth.AuthResult, error)
}

type userService interface {
	Me(ctx context.Context) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	AddFriend(ctx context.Context, friendID uuid.UUID) (*domain.User, error)
}

type thoughtService interface {
	List(ctx context.Context, username *string) ([]domain.Thought, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Thought, error)
	Create(ctx context.Context, text string) (*domain.Thought, error)
	AddReaction(ctx context.Context, thoughtID uuid.UUID, body string) (*domain.Thought, error)
}

// Resolver is the root GraphQL resolver.
type Resolver struct {
	log      *slog.Logger
	auth     authService
	users    userService
	thoughts thoughtService
}

// NewResolver creates the root resolver.
func NewResolver(log *slog.Logger, auth authService, users userService, thoughts thoughtService) *Resolver {
	return &Resolver{
		log:      log,
		auth:     auth,
		users:    users,
		thoughts: thoughts,
	}
}

// NewSchema parses the schema against the root resolver.
func NewSchema(cfg config.GraphQLConfig, r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r, graphql.MaxDepth(cfg.MaxDepth))
}

// Thoughts returns thoughts newest first, optionally narrowed to one author.
func (r *Resolver) Thoughts(ctx context.Context, args struct{ Username *string }) ([]*thoughtResolver, error) {
	thoughts, err := r.thoughts.List(ctx, args.Username)
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedIn)
	}
	return newThoughtResolvers(thoughts), nil
}

// Thought returns a single thought, or null when the id is unknown.
func (r *Resolver) Thought(ctx context.Context, args struct{ ID graphql.ID }) (*thoughtResolver, error) {
	id, err := uuid.Parse(string(args.ID))
	if err != nil {
		return nil, nil
	}

	t, err := r.thoughts.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, r.mapError(ctx, err, msgNotLoggedIn)
	}
	return &thoughtResolver{t: t}, nil
}

// Users returns all users.
func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedIn)
	}
	return newUserResolvers(users), nil
}

// User returns a single user, or null when the username is unknown.
func (r *Resolver) User(ctx context.Context, args struct{ Username string }) (*userResolver, error) {
	u, err := r.users.GetByUsername(ctx, args.Username)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, r.mapError(ctx, err, msgNotLoggedIn)
	}
	return &userResolver{u: u}, nil
}

// Me returns the current session's user.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	u, err := r.users.Me(ctx)
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedIn)
	}
	return &userResolver{u: u}, nil
}

// AddUser signs up a new user and logs them in.
func (r *Resolver) AddUser(ctx context.Context, args struct{ Username, Email, Password string }) (*authResolver, error) {
	res, err := r.auth.Register(ctx, auth.RegisterInput{
		Username: args.Username,
		Email:    args.Email,
		Password: args.Password,
	})
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedInMutation)
	}
	return &authResolver{res: res}, nil
}

// Login verifies credentials and returns a token with the user.
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*authResolver, error) {
	res, err := r.auth.Login(ctx, auth.LoginInput{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedInMutation)
	}
	return &authResolver{res: res}, nil
}

// AddThought posts a thought for the current session's user.
func (r *Resolver) AddThought(ctx context.Context, args struct{ ThoughtText string }) (*thoughtResolver, error) {
	t, err := r.thoughts.Create(ctx, args.ThoughtText)
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedInMutation)
	}
	return &thoughtResolver{t: t}, nil
}

// AddReaction reacts to a thought as the current session's user.
func (r *Resolver) AddReaction(ctx context.Context, args struct {
	ThoughtID    graphql.ID
	ReactionBody string
}) (*thoughtResolver, error) {
	id, err := uuid.Parse(string(args.ThoughtID))
	if err != nil {
		return nil, r.mapError(ctx, domain.ErrNotFound, msgNotLoggedInMutation)
	}

	t, err := r.thoughts.AddReaction(ctx, id, args.ReactionBody)
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedInMutation)
	}
	return &thoughtResolver{t: t}, nil
}

// AddFriend adds a friend to the current session's user and returns the
// updated user.
func (r *Resolver) AddFriend(ctx context.Context, args struct{ FriendID graphql.ID }) (*userResolver, error) {
	id, err := uuid.Parse(string(args.FriendID))
	if err != nil {
		return nil, r.mapError(ctx, domain.ErrNotFound, msgNotLoggedInMutation)
	}

	u, err := r.users.AddFriend(ctx, id)
	if err != nil {
		return nil, r.mapError(ctx, err, msgNotLoggedInMutation)
	}
	return &userResolver{u: u}, nil
}
