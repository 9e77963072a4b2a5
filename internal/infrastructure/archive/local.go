// Package archive keeps rendered documents so they can be downloaded again by id.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nutriquiz/backend/internal/domain"
)

// LocalStore writes documents as <dir>/<id>.pdf
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if it does not exist
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(id string) (string, error) {
	if !domain.ValidDocumentID(id) {
		return "", domain.ErrInvalidRequest
	}
	return filepath.Join(s.dir, id+".pdf"), nil
}

// Put stores data under id, replacing any previous document
func (s *LocalStore) Put(ctx context.Context, id string, data []byte) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return os.Rename(tmp, p)
}

// Get reads the document stored under id
func (s *LocalStore) Get(ctx context.Context, id string) ([]byte, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
