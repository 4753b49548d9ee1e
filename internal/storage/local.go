package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// localStore writes blobs under an uploads directory served statically by the
// HTTP layer; locators are root-relative paths.
type localStore struct {
	dir string
}

func newLocalStore(dir string) *localStore {
	return &localStore{dir: dir}
}

func (s *localStore) Store(_ context.Context, data []byte, originalName, _ string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return "/uploads/" + name, nil
}

func (s *localStore) CreateUploadGrant(context.Context, string, string) (*UploadGrant, error) {
	return nil, ErrGrantsUnsupported
}
