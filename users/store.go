package users

import (
	"context"

	"github.com/user/recipeshare-go/auth"
)

// ProfileStore persists profile updates.
type ProfileStore interface {
	// UpdateProfile applies the non-nil fields of req to the user row and
	// returns the updated user. Returns a not-found error for an unknown ID
	// and a conflict error when the new email is already taken.
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*auth.User, error)
}
