package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/roomshare/api/internal/cache"
	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/search"
)

// searchRunner holds what every collection search needs besides its fetch step.
type searchRunner struct {
	builder *search.Builder
	cache   *cache.SearchCache
	metrics *MetricsService
	logger  *zap.Logger
}

// runSearch builds the query, serves it from cache when possible, otherwise
// fetches the capped candidates and orders them by the requested key.
func runSearch[T search.Sortable](ctx context.Context, r searchRunner, params dto.SearchParams, fetch func(context.Context, search.Query) ([]T, error)) (dto.SearchResponse[T], error) {
	collection := r.builder.Schema().Name

	query, err := r.builder.Build(search.FilterRequest{
		SearchText: params.Search,
		Category:   params.Category,
		RangeSpec:  params.Range,
		SortKey:    params.Sort,
	})
	if err != nil {
		r.metrics.ObserveSearch(collection, SearchOutcomeInvalid, 0)
		return dto.SearchResponse[T]{}, err
	}

	key := cache.Key(query.Collection, query.Fingerprint())
	if r.cache.Enabled() {
		var cached dto.SearchResponse[T]
		err := r.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			r.metrics.RecordCacheLookup(true)
			r.metrics.ObserveSearch(collection, SearchOutcomeCacheHit, cached.Count)
			cached.Cached = true
			return cached, nil
		case errors.Is(err, cache.ErrCacheMiss):
			r.metrics.RecordCacheLookup(false)
		default:
			r.logger.Warn("search cache read failed", zap.String("collection", collection), zap.Error(err))
		}
	}

	start := time.Now()
	records, err := fetch(ctx, query)
	if err != nil {
		r.metrics.ObserveSearch(collection, SearchOutcomeError, 0)
		r.logger.Error("search failed",
			zap.String("collection", collection),
			zap.String("query", query.Fingerprint()),
			zap.Error(err),
		)
		return dto.SearchResponse[T]{}, err
	}

	sorted := search.Sort(records, query.Sort)
	resp := dto.SearchResponse[T]{
		Results: sorted,
		Count:   len(sorted),
		Limit:   query.Cap,
		Sort:    string(query.Sort),
	}
	r.metrics.ObserveSearch(collection, SearchOutcomeOK, resp.Count)
	r.logger.Debug("search executed",
		zap.String("collection", collection),
		zap.String("query", query.Fingerprint()),
		zap.Int("results", resp.Count),
		zap.Duration("latency", time.Since(start)),
	)

	if err := r.cache.Set(ctx, key, resp); err != nil {
		r.logger.Warn("search cache write failed", zap.String("collection", collection), zap.Error(err))
	}
	return resp, nil
}
