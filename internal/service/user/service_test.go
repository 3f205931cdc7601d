package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/deepthoughts/backend/internal/domain"
	"github.com/deepthoughts/backend/pkg/ctxutil"
)

type userRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	ListFunc          func(ctx context.Context) ([]domain.User, error)
	AddFriendFunc     func(ctx context.Context, userID, friendID uuid.UUID) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("unexpected call to GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc == nil {
		panic("unexpected call to GetByUsername")
	}
	return m.GetByUsernameFunc(ctx, username)
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc == nil {
		panic("unexpected call to List")
	}
	return m.ListFunc(ctx)
}

func (m *userRepoMock) AddFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.AddFriendFunc == nil {
		panic("unexpected call to AddFriend")
	}
	return m.AddFriendFunc(ctx, userID, friendID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx(id uuid.UUID) context.Context {
	return ctxutil.WithIdentity(context.Background(), ctxutil.Identity{UserID: id, Username: "alice"})
}

func TestMe(t *testing.T) {
	id := uuid.New()
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, gotID uuid.UUID) (*domain.User, error) {
			if gotID != id {
				t.Errorf("looked up wrong user: %s", gotID)
			}
			return &domain.User{ID: id, Username: "alice"}, nil
		},
	}
	svc := New(testLogger(), users)

	u, err := svc.Me(authedCtx(id))
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if u.ID != id {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestMe_NotLoggedIn(t *testing.T) {
	svc := New(testLogger(), &userRepoMock{})

	_, err := svc.Me(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAddFriend_ReturnsUpdatedSelf(t *testing.T) {
	me, friend := uuid.New(), uuid.New()

	var added bool
	users := &userRepoMock{
		AddFriendFunc: func(_ context.Context, userID, friendID uuid.UUID) error {
			if userID != me || friendID != friend {
				t.Errorf("AddFriend(%s, %s)", userID, friendID)
			}
			added = true
			return nil
		},
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if !added {
				t.Error("GetByID called before AddFriend")
			}
			return &domain.User{ID: id, Username: "alice"}, nil
		},
	}
	svc := New(testLogger(), users)

	u, err := svc.AddFriend(authedCtx(me), friend)
	if err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	if u.ID != me {
		t.Errorf("expected the current user back, got %+v", u)
	}
}

func TestAddFriend_NotLoggedIn(t *testing.T) {
	svc := New(testLogger(), &userRepoMock{})

	_, err := svc.AddFriend(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAddFriend_Self(t *testing.T) {
	me := uuid.New()
	svc := New(testLogger(), &userRepoMock{})

	_, err := svc.AddFriend(authedCtx(me), me)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddFriend_UnknownFriend(t *testing.T) {
	me := uuid.New()
	users := &userRepoMock{
		AddFriendFunc: func(context.Context, uuid.UUID, uuid.UUID) error {
			return domain.ErrNotFound
		},
	}
	svc := New(testLogger(), users)

	_, err := svc.AddFriend(authedCtx(me), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByUsername(t *testing.T) {
	users := &userRepoMock{
		GetByUsernameFunc: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: username}, nil
		},
	}
	svc := New(testLogger(), users)

	u, err := svc.GetByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u.Username != "bob" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestList(t *testing.T) {
	users := &userRepoMock{
		ListFunc: func(context.Context) ([]domain.User, error) {
			return []domain.User{{Username: "alice"}, {Username: "bob"}}, nil
		},
	}
	svc := New(testLogger(), users)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 users, got %d", len(got))
	}
}
