package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/nutriquiz/backend/internal/domain"
)

// FileSource reads the catalog from a JSON file on disk
type FileSource struct {
	path string
}

// NewFileSource creates a file catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the file
func (s *FileSource) Load(ctx context.Context) (*domain.Catalog, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer f.Close()

	return decode(f)
}
