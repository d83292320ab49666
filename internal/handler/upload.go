package handler

import (
	"errors"
	"net/http"

	"github.com/recipeshare/recipeshare-go/internal/middleware"
	"github.com/recipeshare/recipeshare-go/internal/service"
)

// UploadHandler handles HTTP requests for image uploads.
type UploadHandler struct {
	service  *service.UploadService
	maxBytes int64
}

// NewUploadHandler creates a new UploadHandler with the given upload size cap.
func NewUploadHandler(svc *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: svc, maxBytes: maxBytes}
}

// HandleUpload handles POST /api/upload requests. The file arrives as a
// multipart field named "image".
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("no image file provided"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("no image file provided"))
		return
	}
	defer file.Close()

	url, err := h.service.Save(file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile), errors.Is(err, service.ErrEmptyFilename):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
