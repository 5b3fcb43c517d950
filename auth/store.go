package auth

import (
	"context"
	"time"
)

// UserStore persists user accounts. Implementations must enforce username
// uniqueness so that of two concurrent creates with the same username exactly
// one succeeds; the loser gets a conflict error.
type UserStore interface {
	// Create inserts the user. Returns a conflict error when the username
	// (or email, if set) is already taken.
	Create(ctx context.Context, user *User) error

	// FindByUsername looks a user up by username (case-insensitive).
	// Returns a not-found error when the user is absent.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID looks a user up by ID.
	FindByID(ctx context.Context, id string) (*User, error)
}

// RevocationStore tracks revoked token IDs until their natural expiry.
type RevocationStore interface {
	// Revoke records jti as revoked. Revocation is one-way: there is no
	// operation to clear an entry before it expires.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	// IsRevoked reports whether jti has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
