package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/deepthoughts/backend/internal/domain"
)

// Register creates a new user and immediately signs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:        uuid.New(),
		Username:  in.Username,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, u, string(hash))
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(created.ID, created.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("user registered", "user_id", created.ID, "username", created.Username)

	return &AuthResult{Token: token, User: created}, nil
}
