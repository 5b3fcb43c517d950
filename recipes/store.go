package recipes

import "context"

// Store persists recipes and interaction memberships. Implementations must
// make ToggleInteraction safe under concurrent calls for the same
// (user, recipe, kind): duplicate toggles settle to a single membership row,
// never two.
type Store interface {
	// List returns all recipes, newest first, with authors attached.
	List(ctx context.Context) ([]*Recipe, error)

	// Get returns a recipe by ID with its author, or a not-found error.
	Get(ctx context.Context, id string) (*Recipe, error)

	// Create inserts a recipe.
	Create(ctx context.Context, recipe *Recipe) error

	// Update persists changed fields of an existing recipe.
	Update(ctx context.Context, recipe *Recipe) error

	// Delete removes a recipe and, transitively, its interactions.
	Delete(ctx context.Context, id string) error

	// ListByAuthor returns the recipes authored by userID, newest first.
	ListByAuthor(ctx context.Context, userID string) ([]*Recipe, error)

	// ListByInteraction returns the recipes userID has marked with kind.
	ListByInteraction(ctx context.Context, userID string, kind Kind) ([]*Recipe, error)

	// ToggleInteraction atomically flips membership of (userID, recipeID) in
	// the kind relation and reports whether the pair is now a member.
	ToggleInteraction(ctx context.Context, userID, recipeID string, kind Kind) (bool, error)

	// Interactions returns the recipe IDs userID has favorited and wants to
	// try, respectively.
	Interactions(ctx context.Context, userID string) (favorites []string, wantToTry []string, err error)
}
