package recipes

import (
	"context"

	"github.com/google/uuid"

	"github.com/user/recipeshare-go/apperror"
)

// RecipeService holds the business logic for recipe CRUD and interaction
// toggles. Write operations take the acting user's ID explicitly; ownership is
// checked here, not in the handlers.
type RecipeService struct {
	store Store
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(store Store) *RecipeService {
	return &RecipeService{store: store}
}

// List returns all recipes with author information.
func (s *RecipeService) List(ctx context.Context) ([]*Recipe, error) {
	return s.store.List(ctx)
}

// Get returns a single recipe by ID.
func (s *RecipeService) Get(ctx context.Context, id string) (*Recipe, error) {
	return s.store.Get(ctx, id)
}

func validateCreate(req CreateRecipeRequest) error {
	if req.Title == "" || req.Description == "" {
		return apperror.NewValidationError("title and description are required", nil)
	}
	if len(req.Ingredients) == 0 {
		return apperror.NewValidationError("at least one ingredient is required", nil)
	}
	if len(req.Instructions) == 0 {
		return apperror.NewValidationError("at least one instruction is required", nil)
	}
	return nil
}

// Create inserts a new recipe authored by userID.
func (s *RecipeService) Create(ctx context.Context, userID string, req CreateRecipeRequest) (*Recipe, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	recipe := &Recipe{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookTime:     req.CookTime,
		PrepTime:     req.PrepTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		AuthorID:     userID,
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = "Easy"
	}

	if err := s.store.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, recipe.ID)
}

// Update applies a partial update to a recipe owned by userID. Updating
// someone else's recipe is forbidden.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, req UpdateRecipeRequest) (*Recipe, error) {
	recipe, err := s.store.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, apperror.NewForbiddenError("not authorized to update this recipe", nil)
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		recipe.Category = *req.Category
	}
	if req.ImageURL != nil {
		recipe.ImageURL = req.ImageURL
	}

	if recipe.Title == "" || recipe.Description == "" ||
		len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return nil, apperror.NewValidationError("title, description, ingredients and instructions must not be empty", nil)
	}

	if err := s.store.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, recipeID)
}

// Delete removes a recipe owned by userID, along with its interactions.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	recipe, err := s.store.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return apperror.NewForbiddenError("not authorized to delete this recipe", nil)
	}
	return s.store.Delete(ctx, recipeID)
}

// Toggle flips the kind membership for (userID, recipeID) and reports whether
// the recipe is now marked.
func (s *RecipeService) Toggle(ctx context.Context, userID, recipeID string, kind Kind) (bool, error) {
	if !kind.Valid() {
		return false, apperror.NewBadRequestError("unknown interaction kind", nil)
	}
	// Existence check first so a toggle on a missing recipe is a 404, not a
	// silent no-op.
	if _, err := s.store.Get(ctx, recipeID); err != nil {
		return false, err
	}
	return s.store.ToggleInteraction(ctx, userID, recipeID, kind)
}
