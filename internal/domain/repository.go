package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SheetLoader reads a vendor export and returns it as CSV bytes
type SheetLoader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// ImageStore answers the filesystem questions the image resolver asks.
// A missing directory is reported as an empty listing, not an error.
type ImageStore interface {
	List(ctx context.Context, dir string) ([]string, error)
	Exists(ctx context.Context, dir, name string) bool
}

// CatalogWriter persists a catalog document
type CatalogWriter interface {
	Write(ctx context.Context, catalog Catalog) error
}

// CatalogReader loads the last written catalog document
type CatalogReader interface {
	Read(ctx context.Context) (Catalog, error)
}
