package thought

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"

	"github.com/deepthoughts/backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(func() { mock.Close() })
	return mock
}

var thoughtCols = []string{"id", "thought_text", "username", "reactions", "created_at"}

func TestGetByID_DecodesReactions(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	reactions := []byte(`[{"id":"` + uuid.NewString() + `","reactionBody":"nice","username":"bob","createdAt":"2026-08-30T10:00:00Z"}]`)

	mock.ExpectQuery(`SELECT id, thought_text, username, reactions, created_at FROM thoughts WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(thoughtCols).
			AddRow(id, "hello world", "alice", reactions, time.Now()))

	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ThoughtText != "hello world" || got.Username != "alice" {
		t.Errorf("unexpected thought: %+v", got)
	}
	if len(got.Reactions) != 1 || got.Reactions[0].ReactionBody != "nice" || got.Reactions[0].Username != "bob" {
		t.Errorf("unexpected reactions: %+v", got.Reactions)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, thought_text, username, reactions, created_at FROM thoughts WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(thoughtCols))

	_, err := repo.GetByID(context.Background(), id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	th := &domain.Thought{
		ID:          uuid.New(),
		ThoughtText: "first post",
		Username:    "alice",
		Reactions:   []domain.Reaction{},
		CreatedAt:   time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO thoughts .+ RETURNING id, thought_text, username, reactions, created_at`).
		WithArgs(th.ID, th.ThoughtText, th.Username, []byte(`[]`), th.CreatedAt).
		WillReturnRows(pgxmock.NewRows(thoughtCols).
			AddRow(th.ID, th.ThoughtText, th.Username, []byte(`[]`), th.CreatedAt))

	created, err := repo.Create(context.Background(), th)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != th.ID || created.ThoughtText != "first post" {
		t.Errorf("unexpected thought: %+v", created)
	}
	if created.Reactions == nil || len(created.Reactions) != 0 {
		t.Errorf("expected empty reactions, got %+v", created.Reactions)
	}
}

func TestCreate_UnknownAuthor(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	th := &domain.Thought{
		ID:        uuid.New(),
		Username:  "ghost",
		Reactions: []domain.Reaction{},
		CreatedAt: time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO thoughts`).
		WithArgs(th.ID, th.ThoughtText, th.Username, []byte(`[]`), th.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), th)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, thought_text, username, reactions, created_at FROM thoughts ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows(thoughtCols).
			AddRow(uuid.New(), "newer", "alice", []byte(`[]`), now).
			AddRow(uuid.New(), "older", "bob", []byte(`[]`), now.Add(-time.Hour)))

	thoughts, err := repo.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(thoughts) != 2 {
		t.Fatalf("expected 2 thoughts, got %d", len(thoughts))
	}
	if thoughts[0].ThoughtText != "newer" {
		t.Errorf("expected newest first, got %q", thoughts[0].ThoughtText)
	}
}

func TestList_FilterByUsername(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	mock.ExpectQuery(`SELECT id, thought_text, username, reactions, created_at FROM thoughts WHERE username = \$1 ORDER BY created_at DESC`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(thoughtCols).
			AddRow(uuid.New(), "mine", "alice", []byte(`[]`), time.Now()))

	username := "alice"
	thoughts, err := repo.List(context.Background(), &username)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(thoughts) != 1 || thoughts[0].Username != "alice" {
		t.Errorf("unexpected thoughts: %+v", thoughts)
	}
}

func TestList_UnknownAuthorIsEmpty(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	mock.ExpectQuery(`SELECT id, thought_text, username, reactions, created_at FROM thoughts WHERE username = \$1 ORDER BY created_at DESC`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(thoughtCols))

	username := "ghost"
	thoughts, err := repo.List(context.Background(), &username)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(thoughts) != 0 {
		t.Errorf("expected empty list, got %d", len(thoughts))
	}
}

func TestAddReaction_ReturnsUpdatedThought(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	thoughtID := uuid.New()
	reaction := domain.Reaction{
		ID:           uuid.New(),
		ReactionBody: "love it",
		Username:     "bob",
		CreatedAt:    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	updated := []byte(`[{"id":"` + reaction.ID.String() + `","reactionBody":"love it","username":"bob","createdAt":"2026-08-30T10:00:00Z"}]`)

	mock.ExpectQuery(`UPDATE thoughts SET reactions = reactions \|\| \$1::jsonb WHERE id = \$2 RETURNING`).
		WithArgs(pgxmock.AnyArg(), thoughtID).
		WillReturnRows(pgxmock.NewRows(thoughtCols).
			AddRow(thoughtID, "hello", "alice", updated, time.Now()))

	got, err := repo.AddReaction(context.Background(), thoughtID, reaction)
	if err != nil {
		t.Fatalf("AddReaction: %v", err)
	}
	if len(got.Reactions) != 1 {
		t.Fatalf("expected 1 reaction, got %d", len(got.Reactions))
	}
	if got.Reactions[0].Username != "bob" || got.Reactions[0].ReactionBody != "love it" {
		t.Errorf("unexpected reaction: %+v", got.Reactions[0])
	}
}

func TestAddReaction_UnknownThought(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	thoughtID := uuid.New()
	mock.ExpectQuery(`UPDATE thoughts SET reactions`).
		WithArgs(pgxmock.AnyArg(), thoughtID).
		WillReturnRows(pgxmock.NewRows(thoughtCols))

	_, err := repo.AddReaction(context.Background(), thoughtID, domain.Reaction{ID: uuid.New()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUserIDs(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	u1 := uuid.New()
	cols := []string{"user_id", "id", "thought_text", "username", "reactions", "created_at"}

	mock.ExpectQuery(`SELECT ut.user_id, t.id, t.thought_text, t.username, t.reactions, t.created_at FROM user_thoughts ut JOIN thoughts t`).
		WithArgs(u1).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(u1, uuid.New(), "owned", "alice", []byte(`[]`), time.Now()))

	rows, err := repo.ListByUserIDs(context.Background(), []uuid.UUID{u1})
	if err != nil {
		t.Fatalf("ListByUserIDs: %v", err)
	}
	if len(rows) != 1 || rows[0].UserID != u1 || rows[0].ThoughtText != "owned" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
