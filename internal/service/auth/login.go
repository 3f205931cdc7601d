package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/deepthoughts/backend/internal/domain"
	"github.com/deepthoughts/backend/pkg/ctxutil"
)

// Login verifies credentials and returns a signed access token. An unknown
// email and a wrong password both come back as ErrInvalidCredentials, so a
// caller cannot probe which emails are registered.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Normalize()

	u, hash, err := s.users.GetCredentialsByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("user logged in", "user_id", u.ID)

	return &AuthResult{Token: token, User: u}, nil
}

// ValidateToken parses and verifies a raw bearer token and returns the
// identity it carries.
func (s *Service) ValidateToken(ctx context.Context, raw string) (ctxutil.Identity, error) {
	userID, username, err := s.tokens.ValidateAccessToken(raw)
	if err != nil {
		return ctxutil.Identity{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "invalid token")
	}
	return ctxutil.Identity{UserID: userID, Username: username}, nil
}
