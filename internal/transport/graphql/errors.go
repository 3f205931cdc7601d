package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/deepthoughts/backend/internal/domain"
)

// Authentication failure messages surfaced verbatim to clients.
const (
	msgNotLoggedIn          = "Not logged in"
	msgNotLoggedInMutation  = "Not logged in!"
	msgIncorrectCredentials = "Incorrect credentials"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// resolverError is a GraphQL error with a machine-readable code in its
// extensions.
type resolverError struct {
	msg  string
	code string
}

func (e *resolverError) Error() string { return e.msg }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// mapError translates domain errors into client-facing GraphQL errors.
// notLoggedIn is the message used for a missing session, which differs
// between queries and mutations. Unknown errors are logged and hidden
// behind a generic message.
func (r *Resolver) mapError(ctx context.Context, err error, notLoggedIn string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return &resolverError{msg: notLoggedIn, code: "UNAUTHENTICATED"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &resolverError{msg: msgIncorrectCredentials, code: "UNAUTHENTICATED"}
	case errors.Is(err, domain.ErrValidation):
		return &resolverError{msg: err.Error(), code: "VALIDATION"}
	case errors.Is(err, domain.ErrAlreadyExists):
		return &resolverError{msg: "already exists", code: "ALREADY_EXISTS"}
	case errors.Is(err, domain.ErrNotFound):
		return &resolverError{msg: "not found", code: "NOT_FOUND"}
	default:
		r.log.ErrorContext(ctx, "resolver error", slog.Any("error", err))
		return &resolverError{msg: "internal server error", code: "INTERNAL"}
	}
}
