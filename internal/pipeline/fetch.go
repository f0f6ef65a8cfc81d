// Package pipeline implements the data acquisition path: catalog lookup,
// cache-first retrieval, Census API fallback, row normalization, and
// write-through caching.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
	"github.com/couchcryptid/sdoh-dashboard/internal/observability"
)

// ErrFetchFailed wraps transport and HTTP-status failures from the Census
// API. It is recoverable: the caller can simply retry the request.
var ErrFetchFailed = errors.New("census fetch failed")

// RowSource fetches raw header-plus-rows tables from the Census API.
type RowSource interface {
	StateRows(ctx context.Context, variable, endpoint string) ([][]string, error)
	CountyRows(ctx context.Context, variable, endpoint, stateFIPS string) ([][]string, error)
}

// Cache stores normalized record lists keyed by (metric, scope).
type Cache interface {
	Get(ctx context.Context, metric string, scope domain.Scope) ([]domain.Record, bool)
	Put(ctx context.Context, metric string, scope domain.Scope, records []domain.Record) error
}

// Fetcher resolves (metric, scope) requests to normalized record lists,
// consulting the cache before the network and writing fresh results back
// through it.
type Fetcher struct {
	catalog domain.Catalog
	source  RowSource
	cache   Cache
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewFetcher creates a Fetcher over the given catalog, row source, and cache.
func NewFetcher(catalog domain.Catalog, source RowSource, cache Cache, logger *slog.Logger, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		catalog: catalog,
		source:  source,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once at least one fetch has completed
// successfully, or an error describing why the service is not yet ready.
func (f *Fetcher) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("no successful fetch yet")
	}
	return nil
}

// Fetch returns the records for (metric, scope). Cache hits skip the
// network entirely. On a miss the Census API is queried, rows are
// normalized, and a non-empty result is written through to the cache before
// being returned. An empty successful response is returned but never
// cached, so a transient empty answer is retried on the next request.
//
// Errors: domain.ErrUnknownMetric for unregistered metric names,
// ErrFetchFailed for transport or HTTP failures. Both leave the service
// usable; neither is ever cached.
func (f *Fetcher) Fetch(ctx context.Context, metric string, scope domain.Scope) ([]domain.Record, error) {
	def, err := f.catalog.Lookup(metric)
	if err != nil {
		return nil, err
	}
	scope = scope.Normalize()

	if records, ok := f.cache.Get(ctx, metric, scope); ok {
		f.metrics.RecordsServed.Add(float64(len(records)))
		return records, nil
	}

	var table [][]string
	if scope.IsStates() {
		table, err = f.source.StateRows(ctx, def.Variable, def.Endpoint)
	} else {
		table, err = f.source.CountyRows(ctx, def.Variable, def.Endpoint, string(scope))
	}
	if err != nil {
		f.logger.Error("census fetch failed", "metric", metric, "scope", scope, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	var records []domain.Record
	var skipped int
	if scope.IsStates() {
		records, skipped = normalizeStateRows(table)
	} else {
		records, skipped = normalizeCountyRows(table)
	}
	if skipped > 0 {
		f.metrics.RowsSkipped.Add(float64(skipped))
		f.logger.Debug("rows skipped during normalization", "metric", metric, "scope", scope, "skipped", skipped)
	}

	f.ready.Store(true)

	if len(records) == 0 {
		// Not cached: a transient empty response must not stick for a week.
		f.logger.Warn("census response had no usable rows", "metric", metric, "scope", scope)
		return records, nil
	}

	if err := f.cache.Put(ctx, metric, scope, records); err != nil {
		// Best-effort write-through; the in-memory result is still good.
		f.logger.Warn("cache write failed", "metric", metric, "scope", scope, "error", err)
	}

	f.metrics.RecordsServed.Add(float64(len(records)))
	return records, nil
}
