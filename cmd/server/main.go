package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flight-delay-insights/internal/adapter/csvsource"
	httpadapter "github.com/couchcryptid/flight-delay-insights/internal/adapter/http"
	"github.com/couchcryptid/flight-delay-insights/internal/config"
	"github.com/couchcryptid/flight-delay-insights/internal/domain"
	"github.com/couchcryptid/flight-delay-insights/internal/observability"
	"github.com/couchcryptid/flight-delay-insights/internal/pipeline"
	"github.com/couchcryptid/flight-delay-insights/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	clock := clockwork.NewRealClock()
	loader := csvsource.NewLoader(logger)
	cache := store.NewCache(loader, logger, metrics, clock)

	p := pipeline.New(cache, pipeline.Sources{
		Trend: domain.Source{Kind: domain.DatasetTrend, Path: cfg.TrendDataPath},
		Cause: domain.Source{
			Kind:  domain.DatasetCause,
			Path:  cfg.CauseDataPath,
			Years: &domain.Range{Lo: cfg.CauseYearFrom, Hi: cfg.CauseYearTo},
		},
		Airport: domain.Source{Kind: domain.DatasetAirport, Path: cfg.AirportDataPath},
	}, pipeline.Ranking{
		MinFlights: cfg.TopAirportsMinFlights,
		Limit:      cfg.TopAirportsLimit,
	}, logger, metrics, clock)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Datasets are required to serve anything; refuse to start without them.
	if err := p.Warm(ctx); err != nil {
		logger.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
