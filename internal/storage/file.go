package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const storeDirPerm = 0o755

// FileStore is a BlobStore rooted at a local directory. Keys map to file
// paths relative to the root; parent directories are created on write.
type FileStore struct {
	root string
}

// NewFileStore creates a filesystem-backed blob store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Get reads the file at key relative to the store root.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put writes data to the file at key, creating parent directories as needed.
func (s *FileStore) Put(_ context.Context, key string, data []byte, _ string) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), storeDirPerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Location returns the absolute-ish filesystem path for key.
func (s *FileStore) Location(key string) string {
	return s.path(key)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}
