// Package pipeline wires the dataset store to the view computations and
// tracks service readiness.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
	"github.com/couchcryptid/flight-delay-insights/internal/observability"
	"github.com/couchcryptid/flight-delay-insights/internal/store"
)

// DatasetStore returns the in-memory dataset of a source, loading it on first use.
type DatasetStore interface {
	Get(ctx context.Context, src domain.Source) (*store.Dataset, error)
}

// Sources names the three datasets the views read.
type Sources struct {
	Trend   domain.Source
	Cause   domain.Source
	Airport domain.Source
}

// Ranking configures the top airport ranking.
type Ranking struct {
	MinFlights float64
	Limit      int
}

// Pipeline serves view computations over the loaded datasets.
type Pipeline struct {
	store   DatasetStore
	sources Sources
	ranking Ranking
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	ready  atomic.Bool
	ranked atomic.Pointer[[]domain.AirportRisk]
}

// New creates a Pipeline over the given store and sources. View timings use
// clock; a nil clock means the real clock.
func New(s DatasetStore, sources Sources, ranking Ranking, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ranking.MinFlights <= 0 {
		ranking.MinFlights = domain.DefaultRankMinFlights
	}
	if ranking.Limit <= 0 {
		ranking.Limit = domain.DefaultRankLimit
	}
	return &Pipeline{
		store:   s,
		sources: sources,
		ranking: ranking,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// CheckReadiness returns nil once every dataset is loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("datasets are not loaded yet")
	}
	return nil
}

// Warm loads the three datasets and computes the airport ranking. It is safe
// to call more than once; loaded datasets are reused.
func (p *Pipeline) Warm(ctx context.Context) error {
	for _, src := range []domain.Source{p.sources.Trend, p.sources.Cause, p.sources.Airport} {
		ds, err := p.store.Get(ctx, src)
		if err != nil {
			return err
		}
		p.logger.Info("dataset ready",
			"dataset", src.Kind,
			"path", src.Path,
			"rows", len(ds.Records),
			"loaded_at", ds.LoadedAt,
		)
	}

	if _, err := p.Rankings(ctx); err != nil {
		return err
	}

	p.ready.Store(true)
	p.metrics.DatasetsReady.Set(1)
	return nil
}

// Rankings returns the top airports by delay percentage over the cause
// dataset. The ranking is computed once.
func (p *Pipeline) Rankings(ctx context.Context) ([]domain.AirportRisk, error) {
	if ranked := p.ranked.Load(); ranked != nil {
		return *ranked, nil
	}
	ds, err := p.store.Get(ctx, p.sources.Cause)
	if err != nil {
		return nil, err
	}
	ranked := domain.RankAirports(ds.Records, p.ranking.MinFlights, p.ranking.Limit)
	p.ranked.CompareAndSwap(nil, &ranked)
	p.logger.Debug("airports ranked", "min_flights", p.ranking.MinFlights, "ranked", len(ranked))
	return *p.ranked.Load(), nil
}

// Trends computes the trend view.
func (p *Pipeline) Trends(ctx context.Context, f domain.TrendFilter) (domain.TrendView, error) {
	ds, err := p.store.Get(ctx, p.sources.Trend)
	if err != nil {
		p.observeError("trend")
		return domain.TrendView{}, err
	}
	start := p.clock.Now()
	v := domain.ComputeTrendView(ds.Records, f)
	p.observe("trend", outcome(v.Rows), v.Rows, start)
	return v, nil
}

// Causes computes the cause breakdown view. The title period is the year
// restriction of the cause source, or the span of its records when unrestricted.
func (p *Pipeline) Causes(ctx context.Context, f domain.CauseFilter) (domain.CauseView, error) {
	ds, err := p.store.Get(ctx, p.sources.Cause)
	if err != nil {
		p.observeError("cause")
		return domain.CauseView{}, err
	}
	period := domain.YearSpan(ds.Records)
	if p.sources.Cause.Years != nil {
		period = *p.sources.Cause.Years
	}
	start := p.clock.Now()
	v := domain.ComputeCauseView(ds.Records, f, period)
	p.observe("cause", outcome(v.Rows), v.Rows, start)
	return v, nil
}

// Airports computes the airport analysis view.
func (p *Pipeline) Airports(ctx context.Context, f domain.AirportFilter) (domain.AirportView, error) {
	ds, err := p.store.Get(ctx, p.sources.Airport)
	if err != nil {
		p.observeError("airport")
		return domain.AirportView{}, err
	}
	start := p.clock.Now()
	v := domain.ComputeAirportView(ds.Records, f)
	p.observe("airport", outcome(len(v.Rows)), len(v.Rows), start)
	return v, nil
}

// ViewOptions holds the filter choices of every view.
type ViewOptions struct {
	Trend   domain.TrendOptions   `json:"trend"`
	Cause   domain.CauseOptions   `json:"cause"`
	Airport domain.AirportOptions `json:"airport"`
}

// Options enumerates the filter choices of every view. causeAirport narrows
// the cause view carriers to those operating at that airport.
func (p *Pipeline) Options(ctx context.Context, causeAirport string) (ViewOptions, error) {
	trend, err := p.store.Get(ctx, p.sources.Trend)
	if err != nil {
		return ViewOptions{}, err
	}
	cause, err := p.store.Get(ctx, p.sources.Cause)
	if err != nil {
		return ViewOptions{}, err
	}
	airport, err := p.store.Get(ctx, p.sources.Airport)
	if err != nil {
		return ViewOptions{}, err
	}
	ranked, err := p.Rankings(ctx)
	if err != nil {
		return ViewOptions{}, err
	}
	return ViewOptions{
		Trend:   domain.CollectTrendOptions(trend.Records),
		Cause:   domain.CollectCauseOptions(cause.Records, ranked, causeAirport),
		Airport: domain.CollectAirportOptions(airport.Records),
	}, nil
}

// InvalidRequest records a view request rejected before computation.
func (p *Pipeline) InvalidRequest(view string) {
	p.metrics.ViewRequests.WithLabelValues(view, "invalid").Inc()
}

func (p *Pipeline) observeError(view string) {
	p.metrics.ViewRequests.WithLabelValues(view, "error").Inc()
}

func (p *Pipeline) observe(view, result string, rows int, start time.Time) {
	p.metrics.ViewRequests.WithLabelValues(view, result).Inc()
	p.metrics.ViewDuration.WithLabelValues(view).Observe(p.clock.Since(start).Seconds())
	p.metrics.ViewRows.WithLabelValues(view).Observe(float64(rows))
	p.logger.Debug("view computed", "view", view, "rows", rows, "outcome", result)
}

func outcome(rows int) string {
	if rows == 0 {
		return "empty"
	}
	return "ok"
}
