package domain

import "errors"

var (
	// ErrInvalidQuery is returned when a search query is empty
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrInvalidRecord is returned when a raw record fails the field contract
	ErrInvalidRecord = errors.New("invalid raw record")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSourceFailure is returned when a platform source request fails
	ErrSourceFailure = errors.New("source request failed")

	// ErrNoSources is returned when no source adapters are configured
	ErrNoSources = errors.New("no sources configured")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
