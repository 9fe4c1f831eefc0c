package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store persists uploaded images and returns the public retrieval URL. Keys
// are upload timestamps chosen by the caller.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
}

// DiskStore writes uploads beneath a local directory served at baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore constructs a DiskStore, creating the directory if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the upload under key and returns its URL.
func (s *DiskStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid upload key %q", key)
	}

	file, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
