package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipeshare-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PGUserStore is the PostgreSQL-backed UserStore.
type PGUserStore struct {
	db *pgxpool.Pool
}

// NewPGUserStore creates a PGUserStore on the given pool.
func NewPGUserStore(db *pgxpool.Pool) *PGUserStore {
	return &PGUserStore{db: db}
}

const userColumns = `id, username, email, password_hash, is_demo, bio, location, avatar_url, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.IsDemo,
		&u.Bio, &u.Location, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user. The unique indexes on lower(username) and
// lower(email) decide the winner between concurrent duplicate signups.
func (s *PGUserStore) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, username, email, password_hash, is_demo, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`
	err := s.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.HashedPassword, user.IsDemo, time.Now().UTC(),
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return apperror.NewConflictError("email already exists", err)
			}
			return apperror.NewConflictError("username already exists", err)
		}
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

// FindByUsername looks a user up by username, case-insensitively.
func (s *PGUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	user, err := scanUser(s.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by username", err)
	}
	return user, nil
}

// FindByID looks a user up by ID.
func (s *PGUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return user, nil
}

// PGRevocationStore is the PostgreSQL-backed RevocationStore.
type PGRevocationStore struct {
	db *pgxpool.Pool
}

// NewPGRevocationStore creates a PGRevocationStore on the given pool.
func NewPGRevocationStore(db *pgxpool.Pool) *PGRevocationStore {
	return &PGRevocationStore{db: db}
}

// Revoke records jti until expiresAt. Rows whose tokens have since expired are
// purged on the way in; they can never match a verification again because the
// expiry check runs before the revocation lookup.
func (s *PGRevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`); err != nil {
		return apperror.NewDatabaseError("failed to purge expired revocations", err)
	}
	query := `INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2)
	          ON CONFLICT (jti) DO NOTHING`
	if _, err := s.db.Exec(ctx, query, jti, expiresAt); err != nil {
		return apperror.NewDatabaseError("failed to revoke token", err)
	}
	return nil
}

// IsRevoked reports whether jti is present in the revocation table.
func (s *PGRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`
	if err := s.db.QueryRow(ctx, query, jti).Scan(&exists); err != nil {
		return false, apperror.NewDatabaseError("failed to check revocation", err)
	}
	return exists, nil
}
