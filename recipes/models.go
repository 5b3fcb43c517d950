// Package recipes encapsulates recipe CRUD and the per-user favorite and
// want-to-try interactions.
package recipes

import (
	"time"

	"github.com/user/recipeshare-go/auth"
)

// Kind discriminates the two user/recipe interaction relations. Each is
// toggled independently.
type Kind string

const (
	// KindFavorite marks a recipe as a favorite of a user.
	KindFavorite Kind = "favorite"
	// KindWantToTry marks a recipe a user wants to try.
	KindWantToTry Kind = "want_to_try"
)

// Valid reports whether k is one of the known interaction kinds.
func (k Kind) Valid() bool {
	return k == KindFavorite || k == KindWantToTry
}

// Recipe represents a recipe record. Author is populated on reads by joining
// the users table; it is nil on writes.
type Recipe struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	CookTime     int        `json:"cook_time"`
	PrepTime     int        `json:"prep_time"`
	Servings     int        `json:"servings"`
	Difficulty   string     `json:"difficulty"`
	Category     string     `json:"category"`
	ImageURL     *string    `json:"image_url,omitempty"`
	AuthorID     string     `json:"author_id"`
	Author       *auth.User `json:"author,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
