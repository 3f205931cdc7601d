package dataloader

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithLoaders stores a loader set in the context.
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, ctxKey{}, loaders)
}

// FromContext returns the request's loader set. It panics when the loader
// middleware is missing from the chain, which is a wiring bug.
func FromContext(ctx context.Context) *Loaders {
	loaders, ok := ctx.Value(ctxKey{}).(*Loaders)
	if !ok {
		panic("dataloader: middleware not installed")
	}
	return loaders
}

// Middleware attaches a fresh loader set to each request.
func Middleware(repos Repos) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), New(repos))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
