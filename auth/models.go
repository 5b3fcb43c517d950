package auth

import "time"

// User represents a user account. HashedPassword is never serialized; demo
// accounts carry an empty hash and IsDemo set, and cannot log in with a
// password.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          *string   `json:"email,omitempty"`
	HashedPassword string    `json:"-"`
	IsDemo         bool      `json:"is_demo"`
	Bio            *string   `json:"bio,omitempty"`
	Location       *string   `json:"location,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
