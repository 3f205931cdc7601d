// Package thought implements the Thought repository using PostgreSQL.
// Reactions are embedded in each thought row as a jsonb array, so a thought
// always loads together with its reactions.
package thought

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/deepthoughts/backend/internal/adapter/postgres"
	"github.com/deepthoughts/backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var thoughtColumns = []string{"id", "thought_text", "username", "reactions", "created_at"}

// Repo provides thought persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new thought repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ThoughtWithUserID carries a thought together with the owning user's id,
// for batched thought expansion.
type ThoughtWithUserID struct {
	domain.Thought
	UserID uuid.UUID
}

// thoughtRow scans reactions as raw jsonb bytes and decodes them afterwards.
type thoughtRow struct {
	ID          uuid.UUID `db:"id"`
	ThoughtText string    `db:"thought_text"`
	Username    string    `db:"username"`
	Reactions   []byte    `db:"reactions"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row *thoughtRow) toDomain() (*domain.Thought, error) {
	reactions := []domain.Reaction{}
	if len(row.Reactions) > 0 {
		if err := json.Unmarshal(row.Reactions, &reactions); err != nil {
			return nil, fmt.Errorf("decode reactions for thought %s: %w", row.ID, err)
		}
	}
	return &domain.Thought{
		ID:          row.ID,
		ThoughtText: row.ThoughtText,
		Username:    row.Username,
		Reactions:   reactions,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// Create inserts a new thought and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t *domain.Thought) (*domain.Thought, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	reactions, err := json.Marshal(t.Reactions)
	if err != nil {
		return nil, fmt.Errorf("encode reactions: %w", err)
	}

	sql, args, err := qb.Insert("thoughts").
		Columns(thoughtColumns...).
		Values(t.ID, t.ThoughtText, t.Username, reactions, t.CreatedAt).
		Suffix("RETURNING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "thought", t.ID.String())
	}

	var row thoughtRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "thought", t.ID.String())
	}
	return row.toDomain()
}

// GetByID returns a thought by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thought, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(thoughtColumns...).
		From("thoughts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "thought", id.String())
	}

	var row thoughtRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "thought", id.String())
	}
	return row.toDomain()
}

// List returns thoughts newest first. A non-nil username narrows the result
// to that author's thoughts.
func (r *Repo) List(ctx context.Context, username *string) ([]domain.Thought, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := qb.Select(thoughtColumns...).
		From("thoughts").
		OrderBy("created_at DESC")
	if username != nil {
		b = b.Where(sq.Eq{"username": *username})
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "thought", "list")
	}

	rows := []thoughtRow{}
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "thought", "list")
	}
	return toDomainSlice(rows)
}

// ListByUserIDs returns the thoughts referenced by every given user in one
// query, newest first, for the thought dataloader.
func (r *Repo) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]ThoughtWithUserID, error) {
	if len(userIDs) == 0 {
		return []ThoughtWithUserID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("ut.user_id", "t.id", "t.thought_text", "t.username", "t.reactions", "t.created_at").
		From("user_thoughts ut").
		Join("thoughts t ON t.id = ut.thought_id").
		Where(sq.Eq{"ut.user_id": userIDs}).
		OrderBy("t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "thought", "batch")
	}

	type ownedRow struct {
		UserID      uuid.UUID `db:"user_id"`
		ID          uuid.UUID `db:"id"`
		ThoughtText string    `db:"thought_text"`
		Username    string    `db:"username"`
		Reactions   []byte    `db:"reactions"`
		CreatedAt   time.Time `db:"created_at"`
	}

	rows := []ownedRow{}
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "thought", "batch")
	}

	out := make([]ThoughtWithUserID, 0, len(rows))
	for i := range rows {
		row := thoughtRow{
			ID:          rows[i].ID,
			ThoughtText: rows[i].ThoughtText,
			Username:    rows[i].Username,
			Reactions:   rows[i].Reactions,
			CreatedAt:   rows[i].CreatedAt,
		}
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ThoughtWithUserID{Thought: *t, UserID: rows[i].UserID})
	}
	return out, nil
}

// AddReaction appends a reaction to the thought's embedded reaction array and
// returns the updated thought. The append is a single UPDATE, so concurrent
// reactions to the same thought never lose each other.
func (r *Repo) AddReaction(ctx context.Context, thoughtID uuid.UUID, reaction domain.Reaction) (*domain.Thought, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	payload, err := json.Marshal([]domain.Reaction{reaction})
	if err != nil {
		return nil, fmt.Errorf("encode reaction: %w", err)
	}

	sql, args, err := qb.Update("thoughts").
		Set("reactions", sq.Expr("reactions || ?::jsonb", payload)).
		Where(sq.Eq{"id": thoughtID}).
		Suffix("RETURNING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "thought", thoughtID.String())
	}

	var row thoughtRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "thought", thoughtID.String())
	}
	return row.toDomain()
}

const returningColumns = "id, thought_text, username, reactions, created_at"

func toDomainSlice(rows []thoughtRow) ([]domain.Thought, error) {
	out := make([]domain.Thought, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}
