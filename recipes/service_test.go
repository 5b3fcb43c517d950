package recipes

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recipeshare-go/apperror"
)

func newTestService() (*RecipeService, *memStore) {
	store := newMemStore()
	return NewRecipeService(store), store
}

func validCreateRequest() CreateRecipeRequest {
	return CreateRecipeRequest{
		Title:        "Tomato Soup",
		Description:  "A simple soup.",
		Ingredients:  []string{"tomatoes", "salt"},
		Instructions: []string{"chop", "simmer"},
		CookTime:     30,
		PrepTime:     10,
		Servings:     4,
		Category:     "Soup",
	}
}

func TestCreate_Valid(t *testing.T) {
	service, _ := newTestService()

	recipe, err := service.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "user-1", recipe.AuthorID)
	assert.Equal(t, "Easy", recipe.Difficulty, "difficulty defaults when omitted")
	assert.False(t, recipe.CreatedAt.IsZero())
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*CreateRecipeRequest)
	}{
		{"missing title", func(r *CreateRecipeRequest) { r.Title = "" }},
		{"missing description", func(r *CreateRecipeRequest) { r.Description = "" }},
		{"no ingredients", func(r *CreateRecipeRequest) { r.Ingredients = nil }},
		{"no instructions", func(r *CreateRecipeRequest) { r.Instructions = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := service.Create(context.Background(), "user-1", req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err))
		})
	}
}

func TestUpdate_PartialAndOwnership(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	recipe, err := service.Create(ctx, "owner", validCreateRequest())
	require.NoError(t, err)

	newTitle := "Roasted Tomato Soup"
	updated, err := service.Update(ctx, "owner", recipe.ID, UpdateRecipeRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, recipe.Description, updated.Description, "unset fields stay unchanged")

	_, err = service.Update(ctx, "intruder", recipe.ID, UpdateRecipeRequest{Title: &newTitle})
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))

	empty := ""
	_, err = service.Update(ctx, "owner", recipe.ID, UpdateRecipeRequest{Title: &empty})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err), "clearing a required field is rejected")
}

func TestUpdate_NotFound(t *testing.T) {
	service, _ := newTestService()

	title := "x"
	_, err := service.Update(context.Background(), "user-1", "missing", UpdateRecipeRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_OwnershipAndInteractions(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	recipe, err := service.Create(ctx, "owner", validCreateRequest())
	require.NoError(t, err)

	added, err := service.Toggle(ctx, "fan", recipe.ID, KindFavorite)
	require.NoError(t, err)
	require.True(t, added)

	err = service.Delete(ctx, "intruder", recipe.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))

	require.NoError(t, service.Delete(ctx, "owner", recipe.ID))

	_, err = service.Get(ctx, recipe.ID)
	assert.True(t, apperror.IsNotFound(err))

	favorites, _, err := store.Interactions(ctx, "fan")
	require.NoError(t, err)
	assert.Empty(t, favorites, "deleting a recipe removes its interactions")
}

func TestToggle_AddRemoveRoundTrip(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	recipe, err := service.Create(ctx, "owner", validCreateRequest())
	require.NoError(t, err)

	added, err := service.Toggle(ctx, "fan", recipe.ID, KindFavorite)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = service.Toggle(ctx, "fan", recipe.ID, KindFavorite)
	require.NoError(t, err)
	assert.False(t, added)

	// The two kinds are independent relations.
	added, err = service.Toggle(ctx, "fan", recipe.ID, KindWantToTry)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestToggle_MissingRecipe(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Toggle(context.Background(), "fan", "missing", KindFavorite)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestToggle_UnknownKind(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Toggle(context.Background(), "fan", "whatever", Kind("bookmark"))
	require.Error(t, err)
}

func TestToggle_ConcurrentDuplicates(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	recipe, err := service.Create(ctx, "owner", validCreateRequest())
	require.NoError(t, err)

	// An even number of parallel toggles must leave the membership where it
	// started, and an odd number must flip it, regardless of interleaving.
	const toggles = 9
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Toggle(ctx, "fan", recipe.ID, KindFavorite)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	favorites, _, err := store.Interactions(ctx, "fan")
	require.NoError(t, err)
	assert.Equal(t, []string{recipe.ID}, favorites, "odd toggle count ends with a single membership")
}

func TestList_NewestFirst(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, "owner", validCreateRequest())
	require.NoError(t, err)
	req := validCreateRequest()
	req.Title = "Second"
	second, err := service.Create(ctx, "owner", req)
	require.NoError(t, err)

	all, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	ids := []string{all[0].ID, all[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}
