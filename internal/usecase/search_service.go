package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Response sources
const (
	SourceLive    = "live"
	SourceCache   = "cache"
	SourceRequest = "request"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL      time.Duration
	SourceTimeout time.Duration
}

// SearchService fans a query out to every platform adapter, filters and
// deduplicates the settled results and runs them through the categorizer
type SearchService struct {
	cache         domain.CacheRepository
	adapters      []domain.SourceAdapter
	cacheTTL      time.Duration
	sourceTimeout time.Duration
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	cache domain.CacheRepository,
	adapters []domain.SourceAdapter,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	sourceTimeout := config.SourceTimeout
	if sourceTimeout == 0 {
		sourceTimeout = 8 * time.Second
	}

	return &SearchService{
		cache:         cache,
		adapters:      adapters,
		cacheTTL:      cacheTTL,
		sourceTimeout: sourceTimeout,
	}
}

// Platforms returns the platforms this service queries, in adapter order
func (s *SearchService) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(s.adapters))
	for _, a := range s.adapters {
		platforms = append(platforms, a.Platform())
	}
	return platforms
}

// Search compares listings for a query across every configured platform.
// Flow: check cache -> query adapters -> filter -> dedup -> categorize -> cache -> return
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}
	if len(s.adapters) == 0 {
		return nil, domain.ErrNoSources
	}

	cacheKey := generateCacheKey(query)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = SourceCache
		return cached, nil
	}

	records, err := s.collect(ctx, query)
	if err != nil {
		return nil, err
	}

	response := s.buildResponse(query, records)
	response.Source = SourceLive

	if err := s.setInCache(ctx, cacheKey, response); err != nil {
		zap.L().Warn("failed to cache search response",
			zap.String("query", query),
			zap.Error(err),
		)
	}

	return response, nil
}

// CategorizeRecords runs caller-supplied records through validation,
// deduplication and categorization without touching adapters or the cache
func (s *SearchService) CategorizeRecords(query string, records []domain.RawRecord) (*domain.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}

	response := s.buildResponse(query, records)
	response.Source = SourceRequest
	return response, nil
}

// BuildSearchContext derives brand candidates and the size token from a query
func BuildSearchContext(query string) domain.SearchContext {
	sc := domain.SearchContext{PotentialBrands: DetectBrands(query)}
	if size := ExtractWeight(query); size != nil {
		sc.SearchSize = size.Text
	}
	return sc
}

// collect queries every adapter concurrently. Each adapter gets its own
// deadline; a failing or slow adapter contributes nothing. Results are merged
// in adapter order so output does not depend on completion order.
func (s *SearchService) collect(ctx context.Context, query string) ([]domain.RawRecord, error) {
	perAdapter := make([][]domain.RawRecord, len(s.adapters))

	g, gCtx := errgroup.WithContext(ctx)
	for i, adapter := range s.adapters {
		g.Go(func() error {
			aCtx, cancel := context.WithTimeout(gCtx, s.sourceTimeout)
			defer cancel()

			start := time.Now()
			records, err := adapter.Search(aCtx, query)
			log := zap.L().With(
				zap.String("platform", string(adapter.Platform())),
				zap.String("query", query),
				zap.Duration("elapsed", time.Since(start)),
			)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn("source search failed", zap.Error(err))
				return nil
			}

			log.Debug("source search complete", zap.Int("records", len(records)))
			perAdapter[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "search: collect source results")
	}

	var merged []domain.RawRecord
	for _, records := range perAdapter {
		merged = append(merged, records...)
	}
	return merged, nil
}

func (s *SearchService) buildResponse(query string, records []domain.RawRecord) *domain.SearchResponse {
	unique := RemoveDuplicates(FilterValid(records))
	sc := BuildSearchContext(query)
	results := Categorize(unique, sc.PotentialBrands, sc.SearchSize)

	counts := make(map[domain.Platform]int, len(s.adapters))
	for _, p := range s.Platforms() {
		counts[p] = 0
	}
	for _, r := range unique {
		counts[r.Platform]++
	}

	return &domain.SearchResponse{
		Query:          query,
		Context:        sc,
		ExactMatches:   results.ExactMatches,
		Alternatives:   results.Alternatives,
		PlatformCounts: counts,
		TotalResults:   len(unique),
	}
}

// generateCacheKey keys responses by the full query string.
// Format: "search:{query}"
func generateCacheKey(query string) string {
	return "search:" + query
}

// getFromCache retrieves a search response from cache. The cache may hand
// back a decoded JSON document rather than the stored struct.
func (s *SearchService) getFromCache(ctx context.Context, key string) (*domain.SearchResponse, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if response, ok := value.(*domain.SearchResponse); ok {
		copied := *response
		return &copied, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}
	var response domain.SearchResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &response, nil
}

// setInCache stores a search response in cache
func (s *SearchService) setInCache(ctx context.Context, key string, response *domain.SearchResponse) error {
	if s.cache == nil {
		return nil
	}
	response.CachedAt = time.Now()
	return s.cache.Set(ctx, key, response, s.cacheTTL)
}
