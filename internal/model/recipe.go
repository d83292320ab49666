package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Recipe represents a recipe row in the database. Ingredients are stored as
// comma-joined text; the owning user id is immutable after creation.
type Recipe struct {
	ID           int64
	Title        string
	Ingredients  string
	Instructions string
	ImageURL     string
	UserID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IngredientList accepts either a JSON array of strings or a single
// pre-joined string and normalizes both to comma-joined text.
type IngredientList string

// UnmarshalJSON implements json.Unmarshaler.
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = IngredientList(strings.Join(items, ","))
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = IngredientList(joined)
	return nil
}

// String returns the normalized comma-joined form.
func (l IngredientList) String() string {
	return string(l)
}

// CreateRecipeRequest represents a recipe creation request.
type CreateRecipeRequest struct {
	Title        string         `json:"title"`
	Ingredients  IngredientList `json:"ingredients"`
	Instructions string         `json:"instructions"`
	ImageURL     string         `json:"image_url"`
}

// UpdateRecipeRequest represents a partial recipe update.
// Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Title        *string         `json:"title"`
	Ingredients  *IngredientList `json:"ingredients"`
	Instructions *string         `json:"instructions"`
	ImageURL     *string         `json:"image_url"`
}

// RecipeResponse is the public recipe projection.
type RecipeResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"image_url"`
	UserID       int64  `json:"user_id"`
}

// PublicRecipe converts a stored recipe to its public projection.
func PublicRecipe(r *Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
		UserID:       r.UserID,
	}
}

// PublicRecipes converts a slice of recipes to public projections.
// Always returns a non-nil slice so empty lists serialize as [].
func PublicRecipes(recipes []Recipe) []RecipeResponse {
	result := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		result[i] = PublicRecipe(&recipes[i])
	}
	return result
}
