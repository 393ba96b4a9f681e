// Package store keeps loaded datasets in memory for the life of the process.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
	"github.com/couchcryptid/flight-delay-insights/internal/observability"
)

// Dataset is an immutable set of derived records read from one source.
// Callers must not modify Records.
type Dataset struct {
	Source   domain.Source
	Records  []domain.FlightDelayRecord
	LoadedAt time.Time
}

type entry struct {
	ready chan struct{}
	ds    *Dataset
	err   error
}

// Cache loads each source at most once and shares the result with every
// caller. Concurrent callers of the same source wait on a single load. Failed
// loads are not cached, so a later call retries.
type Cache struct {
	loader  domain.RecordLoader
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	entries map[string]*entry
}

// NewCache wraps loader with a load-once cache.
func NewCache(loader domain.RecordLoader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		loader:  loader,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		entries: make(map[string]*entry),
	}
}

// Get returns the dataset for src, loading it on first use.
func (c *Cache) Get(ctx context.Context, src domain.Source) (*Dataset, error) {
	key := cacheKey(src)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		c.entries[key] = e
	}
	c.mu.Unlock()

	if ok {
		c.metrics.DatasetCache.WithLabelValues("hit").Inc()
		select {
		case <-e.ready:
			return e.ds, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.metrics.DatasetCache.WithLabelValues("miss").Inc()
	e.ds, e.err = c.load(ctx, src)
	if e.err != nil {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
	}
	close(e.ready)
	return e.ds, e.err
}

// Loaded reports how many datasets are currently held.
func (c *Cache) Loaded() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		select {
		case <-e.ready:
			if e.err == nil {
				n++
			}
		default:
		}
	}
	return n
}

func (c *Cache) load(ctx context.Context, src domain.Source) (*Dataset, error) {
	dataset := string(src.Kind)
	start := c.clock.Now()

	records, err := c.loader.Load(ctx, src)
	c.metrics.DatasetLoadDuration.WithLabelValues(dataset).Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.DatasetLoads.WithLabelValues(dataset, "error").Inc()
		c.logger.Error("dataset load failed", "dataset", dataset, "path", src.Path, "error", err)
		return nil, fmt.Errorf("load %s dataset: %w", dataset, err)
	}

	c.metrics.DatasetLoads.WithLabelValues(dataset, "success").Inc()
	c.metrics.DatasetRows.WithLabelValues(dataset).Set(float64(len(records)))

	return &Dataset{Source: src, Records: records, LoadedAt: c.clock.Now()}, nil
}

func cacheKey(src domain.Source) string {
	if src.Years == nil {
		return fmt.Sprintf("%s|%s", src.Kind, src.Path)
	}
	return fmt.Sprintf("%s|%s|%d-%d", src.Kind, src.Path, src.Years.Lo, src.Years.Hi)
}
