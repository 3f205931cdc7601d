// Package user implements user queries and the friend graph.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deepthoughts/backend/internal/domain"
	"github.com/deepthoughts/backend/pkg/ctxutil"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	AddFriend(ctx context.Context, userID, friendID uuid.UUID) error
}

// Service handles user operations.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// New creates a user service.
func New(log *slog.Logger, users userRepo) *Service {
	return &Service{log: log, users: users}
}

// Me returns the current session's user.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.users.GetByID(ctx, ident.UserID)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetByUsername returns a single user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// AddFriend adds friendID to the current user's friend set and returns the
// updated current user. Re-adding an existing friend is a no-op.
func (s *Service) AddFriend(ctx context.Context, friendID uuid.UUID) (*domain.User, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if friendID == ident.UserID {
		return nil, domain.NewValidationError("friendId", "cannot befriend yourself")
	}

	if err := s.users.AddFriend(ctx, ident.UserID, friendID); err != nil {
		return nil, err
	}

	s.log.Info("friend added", "user_id", ident.UserID, "friend_id", friendID)

	return s.users.GetByID(ctx, ident.UserID)
}
