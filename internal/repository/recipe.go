package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/recipeshare/recipeshare-go/internal/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

const recipeColumns = `id, title, ingredients, instructions, image_url, user_id, created_at, updated_at`

// RecipeRepository handles recipe persistence operations.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// BeginTx starts a new database transaction.
func (r *RecipeRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// Create inserts a new recipe and sets the generated ID on the recipe struct.
func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	query := `INSERT INTO recipes (title, ingredients, instructions, image_url, user_id) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		recipe.Title, recipe.Ingredients, recipe.Instructions, recipe.ImageURL, recipe.UserID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	recipe.ID = id
	return nil
}

// GetByID retrieves a recipe by its ID.
func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`

	recipe := &model.Recipe{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&recipe.ID, &recipe.Title, &recipe.Ingredients, &recipe.Instructions,
		&recipe.ImageURL, &recipe.UserID, &recipe.CreatedAt, &recipe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	return recipe, nil
}

// List retrieves all recipes ordered by id.
func (r *RecipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY id ASC`
	return r.queryMany(ctx, query)
}

// ListByUser retrieves all recipes owned by the given user.
func (r *RecipeRepository) ListByUser(ctx context.Context, userID int64) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ? ORDER BY id ASC`
	return r.queryMany(ctx, query, userID)
}

// SearchByTitle retrieves recipes whose title contains the query string.
// Matching is case-insensitive; an empty query matches every recipe.
func (r *RecipeRepository) SearchByTitle(ctx context.Context, q string) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE LOWER(title) LIKE LOWER(?) ORDER BY id ASC`
	return r.queryMany(ctx, query, "%"+q+"%")
}

// Update persists the recipe's mutable fields. The owning user id never changes.
func (r *RecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	query := `UPDATE recipes SET title = ?, ingredients = ?, instructions = ?, image_url = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		recipe.Title, recipe.Ingredients, recipe.Instructions, recipe.ImageURL, recipe.ID)
	return err
}

// DeleteTx removes a recipe within the provided transaction. Its comments
// must already be gone; the caller performs the cascade explicitly.
func (r *RecipeRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// DeleteByUserTx removes all recipes owned by a user within the provided transaction.
func (r *RecipeRepository) DeleteByUserTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE user_id = ?`, userID)
	return err
}

func (r *RecipeRepository) queryMany(ctx context.Context, query string, args ...any) ([]model.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		var rec model.Recipe
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Ingredients, &rec.Instructions,
			&rec.ImageURL, &rec.UserID, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}

	return recipes, rows.Err()
}
