// Package catalog loads the read-only food catalog the engine runs on.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/nutriquiz/backend/internal/domain"
)

// decode parses the catalog document: {"foods": {...}, "alternatives": {...}}
func decode(r io.Reader) (*domain.Catalog, error) {
	var c domain.Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrCatalogUnavailable, err)
	}
	return c.Normalize(), nil
}

// LoadOrEmpty loads the catalog from source. A source that fails yields an empty catalog,
// so every food resolves to the fallback values instead of the service refusing to start.
func LoadOrEmpty(ctx context.Context, source domain.CatalogSource, logger *zap.Logger) *domain.Catalog {
	c, err := source.Load(ctx)
	if err != nil {
		logger.Warn("food catalog unavailable, using empty catalog", zap.Error(err))
		return domain.EmptyCatalog()
	}

	logger.Info("food catalog loaded",
		zap.Int("foods", len(c.Foods)),
		zap.Int("substitutions", len(c.Substitutions)),
	)
	return c
}
