package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// PreviewStore persists preview images and returns a public URL
type PreviewStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// LocalPreviewStore writes previews into a directory served under baseURL
type LocalPreviewStore struct {
	dir     string
	baseURL string
}

// NewLocalPreviewStore creates the directory if needed
func NewLocalPreviewStore(dir, baseURL string) (*LocalPreviewStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}
	return &LocalPreviewStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Ensure LocalPreviewStore implements PreviewStore
var _ PreviewStore = (*LocalPreviewStore)(nil)

// Dir returns the directory previews are written to
func (s *LocalPreviewStore) Dir() string {
	return s.dir
}

// Put writes data as name
func (s *LocalPreviewStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid preview name %q", name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}

	log.Printf("✓ Preview stored: %s", path)
	return s.baseURL + "/" + name, nil
}
