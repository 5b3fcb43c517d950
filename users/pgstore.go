package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipeshare-go/apperror"
	"github.com/user/recipeshare-go/auth"
)

const pgUniqueViolation = "23505"

// PGProfileStore is the PostgreSQL-backed ProfileStore.
type PGProfileStore struct {
	db *pgxpool.Pool
}

// NewPGProfileStore creates a PGProfileStore on the given pool.
func NewPGProfileStore(db *pgxpool.Pool) *PGProfileStore {
	return &PGProfileStore{db: db}
}

// UpdateProfile builds the SET clause from the fields actually present in the
// request, so a partial update never clobbers omitted columns.
func (s *PGProfileStore) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*auth.User, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, strings.ToLower(strings.TrimSpace(*req.Email)))
		argID++
	}
	if req.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argID))
		args = append(args, *req.Bio)
		argID++
	}
	if req.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argID))
		args = append(args, *req.Location)
		argID++
	}
	if req.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", argID))
		args = append(args, *req.AvatarURL)
		argID++
	}

	if len(setClauses) == 0 {
		return nil, apperror.NewBadRequestError("no fields provided for update", nil)
	}

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d
	          RETURNING id, username, email, password_hash, is_demo, bio, location, avatar_url, created_at`,
		strings.Join(setClauses, ", "), argID)

	var u auth.User
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.IsDemo,
		&u.Bio, &u.Location, &u.AvatarURL, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("email already exists", err)
		}
		return nil, apperror.NewDatabaseError("failed to update profile", err)
	}
	return &u, nil
}
