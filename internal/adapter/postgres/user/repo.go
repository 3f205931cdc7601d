// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/deepthoughts/backend/internal/adapter/postgres"
	"github.com/deepthoughts/backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"id", "username", "email", "created_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// FriendWithUserID carries a friend row together with the owning user's id,
// for batched friend expansion.
type FriendWithUserID struct {
	domain.User
	UserID uuid.UUID `db:"user_id"`
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}

	var u domain.User
	if err := pgxscan.Get(ctx, q, &u, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	return &u, nil
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", username)
	}

	var u domain.User
	if err := pgxscan.Get(ctx, q, &u, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", username)
	}
	return &u, nil
}

// List returns all users ordered by username.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(userColumns...).
		From("users").
		OrderBy("username").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}

	users := []domain.User{}
	if err := pgxscan.Select(ctx, q, &users, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}
	return users, nil
}

// Create inserts a new user with the given credential hash and returns the
// persisted domain.User. The raw password never reaches this layer.
func (r *Repo) Create(ctx context.Context, u *domain.User, passwordHash string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Insert("users").
		Columns("id", "username", "email", "password_hash", "created_at").
		Values(u.ID, u.Username, u.Email, passwordHash, u.CreatedAt).
		Suffix("RETURNING id, username, email, created_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Username)
	}

	var created domain.User
	if err := pgxscan.Get(ctx, q, &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", u.Username)
	}
	return &created, nil
}

// credentialRow is the only place the stored hash is scanned.
type credentialRow struct {
	domain.User
	PasswordHash string `db:"password_hash"`
}

// GetCredentialsByEmail returns a user together with the stored credential
// hash, for login verification only.
func (r *Repo) GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("id", "username", "email", "created_at", "password_hash").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, "", postgres.MapError(err, "user", email)
	}

	var row credentialRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, "", postgres.MapError(err, "user", email)
	}
	return &row.User, row.PasswordHash, nil
}

// AddFriend adds friendID to userID's friend set. Adding an already-present
// friend is a no-op, not an error (ON CONFLICT DO NOTHING).
func (r *Repo) AddFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Insert("user_friends").
		Columns("user_id", "friend_id").
		Values(userID, friendID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return postgres.MapError(err, "friend", friendID.String())
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "friend", friendID.String())
	}
	return nil
}

// AppendThought records a thought reference in the author's thought set.
func (r *Repo) AppendThought(ctx context.Context, userID, thoughtID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Insert("user_thoughts").
		Columns("user_id", "thought_id").
		Values(userID, thoughtID).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "user_thought", thoughtID.String())
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "user_thought", thoughtID.String())
	}
	return nil
}

// ListFriendsByUserIDs returns the friends of every given user in one query,
// for the friend dataloader.
func (r *Repo) ListFriendsByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]FriendWithUserID, error) {
	if len(userIDs) == 0 {
		return []FriendWithUserID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("f.user_id", "u.id", "u.username", "u.email", "u.created_at").
		From("user_friends f").
		Join("users u ON u.id = f.friend_id").
		Where(sq.Eq{"f.user_id": userIDs}).
		OrderBy("u.username").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "friend", "batch")
	}

	rows := []FriendWithUserID{}
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "friend", "batch")
	}
	return rows, nil
}
