package service

import (
	"context"
	"errors"

	"github.com/recipeshare/recipeshare-go/internal/crypto"
	"github.com/recipeshare/recipeshare-go/internal/model"
	"github.com/recipeshare/recipeshare-go/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles user listing, profile updates, and the explicit
// cascade when an account is deleted.
type UserService struct {
	users    *repository.UserRepository
	recipes  *repository.RecipeRepository
	comments *repository.CommentRepository
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, recipes *repository.RecipeRepository, comments *repository.CommentRepository) *UserService {
	return &UserService{users: users, recipes: recipes, comments: comments}
}

// List returns the public projection of every user.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, len(users))
	for i := range users {
		result[i] = model.PublicUser(&users[i])
	}
	return result, nil
}

// Get returns a user's detail view with their owned recipes embedded.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserDetailResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserDetailResponse{}, ErrUserNotFound
		}
		return model.UserDetailResponse{}, err
	}

	recipes, err := s.recipes.ListByUser(ctx, id)
	if err != nil {
		return model.UserDetailResponse{}, err
	}

	return model.UserDetailResponse{
		UserResponse: model.PublicUser(user),
		Recipes:      model.PublicRecipes(recipes),
	}, nil
}

// Update applies a partial update to a user's own profile. A changed
// password is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, callerID, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	if callerID != id {
		return model.UserResponse{}, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.UserResponse{}, ErrUserTaken
		}
		return model.UserResponse{}, err
	}

	return model.PublicUser(user), nil
}

// Delete removes a user's own account along with everything they own:
// their comments, the comments on their recipes, and their recipes, in
// that order inside one transaction.
func (s *UserService) Delete(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	tx, err := s.users.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.comments.DeleteByUserTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.comments.DeleteByRecipeOwnerTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.recipes.DeleteByUserTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.users.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}
