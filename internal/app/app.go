// Package app wires configuration, storage, services and transport
// together and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/graph-gophers/graphql-go/relay"

	"github.com/deepthoughts/backend/internal/adapter/postgres"
	thoughtrepo "github.com/deepthoughts/backend/internal/adapter/postgres/thought"
	userrepo "github.com/deepthoughts/backend/internal/adapter/postgres/user"
	"github.com/deepthoughts/backend/internal/auth"
	"github.com/deepthoughts/backend/internal/config"
	authservice "github.com/deepthoughts/backend/internal/service/auth"
	thoughtservice "github.com/deepthoughts/backend/internal/service/thought"
	userservice "github.com/deepthoughts/backend/internal/service/user"
	gqltransport "github.com/deepthoughts/backend/internal/transport/graphql"
	"github.com/deepthoughts/backend/internal/transport/graphql/dataloader"
	"github.com/deepthoughts/backend/internal/transport/middleware"
	"github.com/deepthoughts/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, wires services and resolvers, and
// serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database); err != nil {
		return err
	}

	userRepo := userrepo.New(pool)
	thoughtRepo := thoughtrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authSvc := authservice.New(logger, userRepo, jwtManager, cfg.Auth.PasswordHashCost)
	userSvc := userservice.New(logger, userRepo)
	thoughtSvc := thoughtservice.New(logger, thoughtRepo, userRepo, txManager)

	resolver := gqltransport.NewResolver(logger, authSvc, userSvc, thoughtSvc)
	schema := gqltransport.NewSchema(cfg.GraphQL, resolver)

	health := rest.NewHealthHandler(pool, BuildVersion())

	mux := http.NewServeMux()
	mux.Handle("/graphql", &relay.Handler{Schema: schema})
	mux.HandleFunc("/health/live", health.Live)
	mux.HandleFunc("/health/ready", health.Ready)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authSvc),
		dataloader.Middleware(dataloader.Repos{Friends: userRepo, Thoughts: thoughtRepo}),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
