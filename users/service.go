package users

import (
	"context"

	"github.com/user/recipeshare-go/auth"
	"github.com/user/recipeshare-go/recipes"
)

// UserService provides profile updates and the caller's recipe collections.
// Collection queries are served by the recipe store; this service only decides
// which slice of it belongs to the authenticated user.
type UserService struct {
	profiles ProfileStore
	recipes  recipes.Store
}

// NewUserService creates a new UserService.
func NewUserService(profiles ProfileStore, recipeStore recipes.Store) *UserService {
	return &UserService{profiles: profiles, recipes: recipeStore}
}

// UpdateProfile applies a partial profile update for userID.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*auth.User, error) {
	return s.profiles.UpdateProfile(ctx, userID, req)
}

// Interactions returns the IDs of recipes userID has favorited and wants to try.
func (s *UserService) Interactions(ctx context.Context, userID string) (*InteractionsResponse, error) {
	favorites, wantToTry, err := s.recipes.Interactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &InteractionsResponse{Favorites: favorites, WantToTry: wantToTry}, nil
}

// MyRecipes returns the recipes authored by userID.
func (s *UserService) MyRecipes(ctx context.Context, userID string) ([]*recipes.Recipe, error) {
	return s.recipes.ListByAuthor(ctx, userID)
}

// Favorites returns the recipes userID has favorited.
func (s *UserService) Favorites(ctx context.Context, userID string) ([]*recipes.Recipe, error) {
	return s.recipes.ListByInteraction(ctx, userID, recipes.KindFavorite)
}

// WantToTry returns the recipes userID wants to try.
func (s *UserService) WantToTry(ctx context.Context, userID string) ([]*recipes.Recipe, error) {
	return s.recipes.ListByInteraction(ctx, userID, recipes.KindWantToTry)
}
