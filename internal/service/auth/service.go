// Package auth implements signup, login and token validation.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deepthoughts/backend/internal/domain"
)

// userRepo is the slice of user storage this service needs.
type userRepo interface {
	Create(ctx context.Context, u *domain.User, passwordHash string) (*domain.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, string, error)
}

type tokenManager interface {
	GenerateAccessToken(userID uuid.UUID, username string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// AuthResult is returned by Register and Login: a signed access token plus
// the user it belongs to.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Service handles authentication flows.
type Service struct {
	log      *slog.Logger
	users    userRepo
	tokens   tokenManager
	hashCost int
}

// New creates an auth service.
func New(log *slog.Logger, users userRepo, tokens tokenManager, hashCost int) *Service {
	return &Service{
		log:      log,
		users:    users,
		tokens:   tokens,
		hashCost: hashCost,
	}
}
