package service

import (
	"context"
	"errors"

	"github.com/recipeshare/recipeshare-go/internal/model"
	"github.com/recipeshare/recipeshare-go/internal/repository"
)

var (
	ErrTitleRequired        = errors.New("title is required")
	ErrIngredientsRequired  = errors.New("ingredients are required")
	ErrInstructionsRequired = errors.New("instructions are required")
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrForbidden            = errors.New("not allowed to modify this resource")
)

// RecipeService handles recipe business logic: validation, ownership checks,
// and the explicit comment cascade on delete.
type RecipeService struct {
	recipes  *repository.RecipeRepository
	comments *repository.CommentRepository
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(recipes *repository.RecipeRepository, comments *repository.CommentRepository) *RecipeService {
	return &RecipeService{recipes: recipes, comments: comments}
}

// List returns all recipes.
func (s *RecipeService) List(ctx context.Context) ([]model.RecipeResponse, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.PublicRecipes(recipes), nil
}

// Create stores a new recipe owned by the calling user.
func (s *RecipeService) Create(ctx context.Context, userID int64, req model.CreateRecipeRequest) (model.RecipeResponse, error) {
	if req.Title == "" {
		return model.RecipeResponse{}, ErrTitleRequired
	}
	if req.Ingredients == "" {
		return model.RecipeResponse{}, ErrIngredientsRequired
	}
	if req.Instructions == "" {
		return model.RecipeResponse{}, ErrInstructionsRequired
	}

	recipe := &model.Recipe{
		Title:        req.Title,
		Ingredients:  req.Ingredients.String(),
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		UserID:       userID,
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return model.RecipeResponse{}, err
	}

	return model.PublicRecipe(recipe), nil
}

// Get returns a single recipe by id.
func (s *RecipeService) Get(ctx context.Context, id int64) (model.RecipeResponse, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return model.RecipeResponse{}, ErrRecipeNotFound
		}
		return model.RecipeResponse{}, err
	}
	return model.PublicRecipe(recipe), nil
}

// Update applies a partial update to a recipe. Only the owner may update;
// fields absent from the request are left unchanged.
func (s *RecipeService) Update(ctx context.Context, userID, id int64, req model.UpdateRecipeRequest) (model.RecipeResponse, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return model.RecipeResponse{}, ErrRecipeNotFound
		}
		return model.RecipeResponse{}, err
	}

	if recipe.UserID != userID {
		return model.RecipeResponse{}, ErrForbidden
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Ingredients != nil {
		recipe.Ingredients = req.Ingredients.String()
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return model.RecipeResponse{}, err
	}

	return model.PublicRecipe(recipe), nil
}

// Delete removes a recipe and, first, all of its comments. Only the owner
// may delete. Both deletes run in one transaction so no orphan comment can
// survive a partial failure.
func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID != userID {
		return ErrForbidden
	}

	tx, err := s.recipes.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.comments.DeleteByRecipeTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.recipes.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Search returns recipes whose title contains the query substring,
// case-insensitively. An empty query returns all recipes.
func (s *RecipeService) Search(ctx context.Context, query string) ([]model.RecipeResponse, error) {
	recipes, err := s.recipes.SearchByTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	return model.PublicRecipes(recipes), nil
}
