package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoFile        = errors.New("no image file provided")
	ErrEmptyFilename = errors.New("no selected file")
)

// UploadService stores uploaded images under a fixed directory and hands
// back the relative URL they will be served from.
type UploadService struct {
	dir string
}

// NewUploadService creates a new UploadService writing into dir.
func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir}
}

// Save writes the uploaded file under the uploads directory and returns its
// relative URL path. The client filename is sanitized and prefixed with a
// random UUID so two uploads can never collide or escape the directory.
func (s *UploadService) Save(src io.Reader, filename string) (string, error) {
	if filename == "" {
		return "", ErrEmptyFilename
	}

	name := SanitizeFilename(filename)
	if name == "" {
		return "", ErrEmptyFilename
	}
	name = uuid.NewString() + "_" + name

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating uploads dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

// SanitizeFilename reduces a client-supplied filename to a safe base name:
// path components are stripped and anything outside [a-zA-Z0-9._-] becomes
// an underscore. Returns "" when nothing safe remains.
func SanitizeFilename(filename string) string {
	// Strip any directory part, whichever separator the client used.
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	if filename == "." || filename == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), ".")
	if strings.Trim(name, "._-") == "" {
		return ""
	}
	return name
}
