package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	url, err := svc.Save(strings.NewReader("image-bytes"), "cake.png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("url = %q, want /uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, "cake.png") {
		t.Errorf("url = %q, want cake.png suffix", url)
	}

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestUploadSaveEmptyFilename(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	if _, err := svc.Save(strings.NewReader("x"), ""); err != ErrEmptyFilename {
		t.Errorf("err = %v, want ErrEmptyFilename", err)
	}
}

func TestUploadSaveTraversalNameStaysInDir(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	url, err := svc.Save(strings.NewReader("x"), "../../etc/passwd")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Fatalf("unsafe stored name %q", name)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in uploads dir, got %d", len(entries))
	}
}

func TestUploadSaveUniqueNames(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	url1, err := svc.Save(strings.NewReader("a"), "cake.png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	url2, err := svc.Save(strings.NewReader("b"), "cake.png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url1 == url2 {
		t.Error("two uploads of the same filename produced the same URL")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cake.png", "cake.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"...", ""},
		{"___", ""},
		{"s p a c e.jpg", "s_p_a_c_e.jpg"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
