package graphql

import (
	"github.com/deepthoughts/backend/internal/service/auth"
)

// authResolver resolves the Auth payload returned by addUser and login.
type authResolver struct {
	res *auth.AuthResult
}

func (r *authResolver) Token() string {
	return r.res.Token
}

func (r *authResolver) User() *userResolver {
	return &userResolver{u: r.res.User}
}
