// Package users encapsulates user profile management and the per-user
// collection queries (interactions, my-recipes, favorites, want-to-try).
package users

// UpdateProfileRequest is the payload for PUT /api/users/profile. Nil fields
// are left unchanged; the username and ID are immutable.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// InteractionsResponse lists the recipe IDs the caller has favorited and
// wants to try.
type InteractionsResponse struct {
	Favorites []string `json:"favorites"`
	WantToTry []string `json:"want_to_try"`
}
