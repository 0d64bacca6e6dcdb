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
	Exists(ctx context.Context, key string) (bool, error)
}

// SourceAdapter fetches raw listings for a query from one platform.
// Results carry no cleanliness guarantee; an error means the platform
// contributed nothing for this search.
type SourceAdapter interface {
	Platform() Platform
	Search(ctx context.Context, query string) ([]RawRecord, error)
}
