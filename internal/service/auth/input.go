package auth

import (
	"strings"

	"github.com/deepthoughts/backend/internal/domain"
)

const minPasswordLength = 5

// RegisterInput carries signup data.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Normalize trims whitespace and lowercases the email.
func (in *RegisterInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// Validate checks the input and returns a domain.ValidationError listing
// every failed field.
func (in RegisterInput) Validate() error {
	var fields []domain.FieldError
	if in.Username == "" {
		fields = append(fields, domain.FieldError{Field: "username", Message: "is required"})
	}
	if !strings.Contains(in.Email, "@") {
		fields = append(fields, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(in.Password) < minPasswordLength {
		fields = append(fields, domain.FieldError{Field: "password", Message: "must be at least 5 characters"})
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Errors: fields}
	}
	return nil
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Normalize lowercases and trims the email.
func (in *LoginInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}
