package service

import (
	"context"
	"errors"

	"github.com/recipeshare/recipeshare-go/internal/model"
	"github.com/recipeshare/recipeshare-go/internal/repository"
)

var (
	ErrTextRequired    = errors.New("text is required")
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentService handles comment business logic.
type CommentService struct {
	comments *repository.CommentRepository
	recipes  *repository.RecipeRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments *repository.CommentRepository, recipes *repository.RecipeRepository) *CommentService {
	return &CommentService{comments: comments, recipes: recipes}
}

// Create stores a new comment on a recipe. The parent recipe is checked
// explicitly so a comment can never reference a missing recipe.
func (s *CommentService) Create(ctx context.Context, userID, recipeID int64, req model.CreateCommentRequest) (model.CommentResponse, error) {
	if req.Text == "" {
		return model.CommentResponse{}, ErrTextRequired
	}

	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return model.CommentResponse{}, ErrRecipeNotFound
		}
		return model.CommentResponse{}, err
	}

	comment := &model.Comment{
		Text:     req.Text,
		UserID:   userID,
		RecipeID: recipeID,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return model.CommentResponse{}, err
	}

	return model.PublicComment(comment), nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrForbidden
	}

	return s.comments.Delete(ctx, commentID)
}
