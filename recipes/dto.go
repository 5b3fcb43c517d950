package recipes

// CreateRecipeRequest is the payload for POST /api/recipes.
type CreateRecipeRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookTime     int      `json:"cook_time"`
	PrepTime     int      `json:"prep_time"`
	Servings     int      `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	Category     string   `json:"category"`
	ImageURL     *string  `json:"image_url,omitempty"`
}

// UpdateRecipeRequest is the payload for PUT /api/recipes/{id}. Nil fields are
// left unchanged.
type UpdateRecipeRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Ingredients  *[]string `json:"ingredients,omitempty"`
	Instructions *[]string `json:"instructions,omitempty"`
	CookTime     *int      `json:"cook_time,omitempty"`
	PrepTime     *int      `json:"prep_time,omitempty"`
	Servings     *int      `json:"servings,omitempty"`
	Difficulty   *string   `json:"difficulty,omitempty"`
	Category     *string   `json:"category,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
}
