package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploaded files to a directory on local disk
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a local disk store rooted at dir. Files are served
// under baseURL (e.g. "/uploads").
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Save writes the file to disk and returns its public URL
func (s *LocalStore) Save(_ context.Context, name, _ string, data io.Reader) (string, error) {
	// name is generated by the service, never taken from the client, so a
	// plain join is safe. Base guards against a misbehaving caller anyway.
	path := filepath.Join(s.dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/" + filepath.Base(name), nil
}

// Dir returns the directory files are written to
func (s *LocalStore) Dir() string {
	return s.dir
}
