package model

import "time"

// Comment represents a comment row in the database.
type Comment struct {
	ID        int64
	Text      string
	UserID    int64
	RecipeID  int64
	CreatedAt time.Time
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is the public comment projection. The author id is
// included so clients can render ownership.
type CommentResponse struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	RecipeID int64  `json:"recipe_id"`
	UserID   int64  `json:"user_id"`
}

// PublicComment converts a stored comment to its public projection.
func PublicComment(c *Comment) CommentResponse {
	return CommentResponse{
		ID:       c.ID,
		Text:     c.Text,
		RecipeID: c.RecipeID,
		UserID:   c.UserID,
	}
}
