package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/recipeshare/recipeshare-go/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository handles comment persistence operations.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment and sets the generated ID on the comment struct.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO comments (text, user_id, recipe_id) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, comment.Text, comment.UserID, comment.RecipeID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	comment.ID = id
	return nil
}

// GetByID retrieves a comment by its ID.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `SELECT id, text, user_id, recipe_id, created_at FROM comments WHERE id = ?`

	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Text, &comment.UserID, &comment.RecipeID, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return comment, nil
}

// ListByRecipe retrieves all comments on the given recipe ordered by id.
func (r *CommentRepository) ListByRecipe(ctx context.Context, recipeID int64) ([]model.Comment, error) {
	query := `SELECT id, text, user_id, recipe_id, created_at FROM comments WHERE recipe_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.UserID, &c.RecipeID, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// Delete removes a comment by its ID.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// DeleteByRecipeTx removes all comments on a recipe within the provided transaction.
func (r *CommentRepository) DeleteByRecipeTx(ctx context.Context, tx *sql.Tx, recipeID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE recipe_id = ?`, recipeID)
	return err
}

// DeleteByUserTx removes all comments written by a user within the provided transaction.
func (r *CommentRepository) DeleteByUserTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE user_id = ?`, userID)
	return err
}

// DeleteByRecipeOwnerTx removes all comments sitting on recipes owned by the
// given user, within the provided transaction. Needed when cascading a user
// delete so no comment is left referencing a deleted recipe.
func (r *CommentRepository) DeleteByRecipeOwnerTx(ctx context.Context, tx *sql.Tx, ownerID int64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE recipe_id IN (SELECT id FROM recipes WHERE user_id = ?)`, ownerID)
	return err
}
