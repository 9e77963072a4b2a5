package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque bytes; callers own the encoding.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogSource loads the food catalog. Implementations return ErrCatalogUnavailable
// wrapped with the cause; callers fall back to EmptyCatalog.
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}

// SessionRepository keeps quiz submissions between requests
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
}

// LeadRepository is the append-only lead log
type LeadRepository interface {
	Append(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]Lead, error)
}

// DocumentRenderer turns a report into a PDF
type DocumentRenderer interface {
	Render(report *PlanReport) ([]byte, error)
}

// DocumentArchive stores rendered PDFs for later download
type DocumentArchive interface {
	Put(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
}

// DocumentLinker is implemented by archives that can hand out direct download links.
// An empty URL means the document has to be streamed instead.
type DocumentLinker interface {
	URL(ctx context.Context, id string) (string, error)
}
