package recipes

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipeshare-go/apperror"
	"github.com/user/recipeshare-go/auth"
)

// PGStore is the PostgreSQL-backed recipe Store.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PGStore on the given pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const recipeColumns = `
	r.id, r.title, r.description, r.ingredients, r.instructions,
	r.cook_time, r.prep_time, r.servings, r.difficulty, r.category,
	r.image_url, r.author_id, r.created_at, r.updated_at,
	u.id, u.username, u.email, u.is_demo, u.bio, u.location, u.avatar_url, u.created_at`

const recipeFrom = ` FROM recipes r JOIN users u ON u.id = r.author_id`

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var rec Recipe
	var author auth.User
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Ingredients, &rec.Instructions,
		&rec.CookTime, &rec.PrepTime, &rec.Servings, &rec.Difficulty, &rec.Category,
		&rec.ImageURL, &rec.AuthorID, &rec.CreatedAt, &rec.UpdatedAt,
		&author.ID, &author.Username, &author.Email, &author.IsDemo,
		&author.Bio, &author.Location, &author.AvatarURL, &author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Author = &author
	return &rec, nil
}

func (s *PGStore) queryRecipes(ctx context.Context, query string, args ...interface{}) ([]*Recipe, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to query recipes", err)
	}
	defer rows.Close()

	recipes := []*Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan recipe", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read recipes", err)
	}
	return recipes, nil
}

// List returns all recipes, newest first, with authors attached.
func (s *PGStore) List(ctx context.Context) ([]*Recipe, error) {
	query := `SELECT` + recipeColumns + recipeFrom + ` ORDER BY r.created_at DESC`
	return s.queryRecipes(ctx, query)
}

// Get returns a recipe by ID with its author.
func (s *PGStore) Get(ctx context.Context, id string) (*Recipe, error) {
	query := `SELECT` + recipeColumns + recipeFrom + ` WHERE r.id = $1`
	rec, err := scanRecipe(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("recipe not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get recipe", err)
	}
	return rec, nil
}

// Create inserts a recipe.
func (s *PGStore) Create(ctx context.Context, recipe *Recipe) error {
	query := `INSERT INTO recipes (id, title, description, ingredients, instructions,
	              cook_time, prep_time, servings, difficulty, category, image_url,
	              author_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`
	now := time.Now().UTC()
	_, err := s.db.Exec(ctx, query,
		recipe.ID, recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions,
		recipe.CookTime, recipe.PrepTime, recipe.Servings, recipe.Difficulty, recipe.Category,
		recipe.ImageURL, recipe.AuthorID, now,
	)
	if err != nil {
		return apperror.NewDatabaseError("failed to create recipe", err)
	}
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	return nil
}

// Update persists the full current state of the recipe and bumps updated_at.
func (s *PGStore) Update(ctx context.Context, recipe *Recipe) error {
	query := `UPDATE recipes
	          SET title = $2, description = $3, ingredients = $4, instructions = $5,
	              cook_time = $6, prep_time = $7, servings = $8, difficulty = $9,
	              category = $10, image_url = $11, updated_at = $12
	          WHERE id = $1`
	now := time.Now().UTC()
	tag, err := s.db.Exec(ctx, query,
		recipe.ID, recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions,
		recipe.CookTime, recipe.PrepTime, recipe.Servings, recipe.Difficulty,
		recipe.Category, recipe.ImageURL, now,
	)
	if err != nil {
		return apperror.NewDatabaseError("failed to update recipe", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("recipe not found", nil)
	}
	recipe.UpdatedAt = now
	return nil
}

// Delete removes a recipe; the interactions FK cascades.
func (s *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete recipe", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("recipe not found", nil)
	}
	return nil
}

// ListByAuthor returns the recipes authored by userID, newest first.
func (s *PGStore) ListByAuthor(ctx context.Context, userID string) ([]*Recipe, error) {
	query := `SELECT` + recipeColumns + recipeFrom + ` WHERE r.author_id = $1 ORDER BY r.created_at DESC`
	return s.queryRecipes(ctx, query, userID)
}

// ListByInteraction returns the recipes userID has marked with kind.
func (s *PGStore) ListByInteraction(ctx context.Context, userID string, kind Kind) ([]*Recipe, error) {
	query := `SELECT` + recipeColumns + recipeFrom + `
	          JOIN recipe_interactions i ON i.recipe_id = r.id
	          WHERE i.user_id = $1 AND i.kind = $2
	          ORDER BY i.created_at DESC`
	return s.queryRecipes(ctx, query, userID, string(kind))
}

// ToggleInteraction flips membership of (userID, recipeID) in the kind
// relation. The delete-else-insert runs against the composite primary key, so
// two concurrent toggles settle to exactly one membership row: the second
// insert hits ON CONFLICT and becomes a no-op.
func (s *PGStore) ToggleInteraction(ctx context.Context, userID, recipeID string, kind Kind) (bool, error) {
	del := `DELETE FROM recipe_interactions WHERE user_id = $1 AND recipe_id = $2 AND kind = $3`
	tag, err := s.db.Exec(ctx, del, userID, recipeID, string(kind))
	if err != nil {
		return false, apperror.NewDatabaseError("failed to toggle interaction", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	ins := `INSERT INTO recipe_interactions (user_id, recipe_id, kind)
	        VALUES ($1, $2, $3)
	        ON CONFLICT (user_id, recipe_id, kind) DO NOTHING`
	if _, err := s.db.Exec(ctx, ins, userID, recipeID, string(kind)); err != nil {
		return false, apperror.NewDatabaseError("failed to toggle interaction", err)
	}
	return true, nil
}

// Interactions returns the recipe IDs userID has favorited and wants to try.
func (s *PGStore) Interactions(ctx context.Context, userID string) ([]string, []string, error) {
	query := `SELECT recipe_id, kind FROM recipe_interactions WHERE user_id = $1 ORDER BY created_at`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to query interactions", err)
	}
	defer rows.Close()

	favorites := []string{}
	wantToTry := []string{}
	for rows.Next() {
		var recipeID, kind string
		if err := rows.Scan(&recipeID, &kind); err != nil {
			return nil, nil, apperror.NewDatabaseError("failed to scan interaction", err)
		}
		switch Kind(kind) {
		case KindFavorite:
			favorites = append(favorites, recipeID)
		case KindWantToTry:
			wantToTry = append(wantToTry, recipeID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to read interactions", err)
	}
	return favorites, wantToTry, nil
}
