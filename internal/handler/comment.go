package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/recipeshare/recipeshare-go/internal/middleware"
	"github.com/recipeshare/recipeshare-go/internal/model"
	"github.com/recipeshare/recipeshare-go/internal/service"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// HandleCreate handles POST /api/comments/{recipeID} requests.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	recipeID, ok := idParam(r, "recipeID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid recipe id"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Create(r.Context(), userID, recipeID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrRecipeNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleDelete handles DELETE /api/comments/{commentID} requests.
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	commentID, ok := idParam(r, "commentID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid comment id"))
		return
	}

	err := h.service.Delete(r.Context(), userID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("comment deleted"))
}
