// Package thought implements the thought feed: posting, listing and
// reacting.
package thought

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/deepthoughts/backend/internal/domain"
	"github.com/deepthoughts/backend/pkg/ctxutil"
)

const maxThoughtLength = 280

type thoughtRepo interface {
	Create(ctx context.Context, t *domain.Thought) (*domain.Thought, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Thought, error)
	List(ctx context.Context, username *string) ([]domain.Thought, error)
	AddReaction(ctx context.Context, thoughtID uuid.UUID, reaction domain.Reaction) (*domain.Thought, error)
}

type userRepo interface {
	AppendThought(ctx context.Context, userID, thoughtID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service handles thought operations.
type Service struct {
	log      *slog.Logger
	thoughts thoughtRepo
	users    userRepo
	tx       txManager
}

// New creates a thought service.
func New(log *slog.Logger, thoughts thoughtRepo, users userRepo, tx txManager) *Service {
	return &Service{
		log:      log,
		thoughts: thoughts,
		users:    users,
		tx:       tx,
	}
}

// List returns thoughts newest first, optionally narrowed to one author.
// An unknown author yields an empty list, not an error.
func (s *Service) List(ctx context.Context, username *string) ([]domain.Thought, error) {
	return s.thoughts.List(ctx, username)
}

// Get returns a single thought by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Thought, error) {
	return s.thoughts.GetByID(ctx, id)
}

// Create posts a new thought for the current session's user. The thought row
// and the author's back-reference are written in one transaction.
func (s *Service) Create(ctx context.Context, text string) (*domain.Thought, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if text == "" {
		return nil, domain.NewValidationError("thoughtText", "is required")
	}
	if utf8.RuneCountInString(text) > maxThoughtLength {
		return nil, domain.NewValidationError("thoughtText", fmt.Sprintf("must be at most %d characters", maxThoughtLength))
	}

	t := &domain.Thought{
		ID:          uuid.New(),
		ThoughtText: text,
		Username:    ident.Username,
		Reactions:   []domain.Reaction{},
		CreatedAt:   time.Now().UTC(),
	}

	var created *domain.Thought
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.thoughts.Create(ctx, t)
		if err != nil {
			return err
		}
		return s.users.AppendThought(ctx, ident.UserID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("thought created", "thought_id", created.ID, "username", ident.Username)

	return created, nil
}

// AddReaction appends a reaction to a thought. The reaction's author is
// always the session's user, regardless of what the client sends.
func (s *Service) AddReaction(ctx context.Context, thoughtID uuid.UUID, body string) (*domain.Thought, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if body == "" {
		return nil, domain.NewValidationError("reactionBody", "is required")
	}
	if utf8.RuneCountInString(body) > maxThoughtLength {
		return nil, domain.NewValidationError("reactionBody", fmt.Sprintf("must be at most %d characters", maxThoughtLength))
	}

	reaction := domain.Reaction{
		ID:           uuid.New(),
		ReactionBody: body,
		Username:     ident.Username,
		CreatedAt:    time.Now().UTC(),
	}

	return s.thoughts.AddReaction(ctx, thoughtID, reaction)
}
