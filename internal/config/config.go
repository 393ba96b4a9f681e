// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset locations.
	TrendDataPath   string
	CauseDataPath   string
	AirportDataPath string

	// Cause dataset restriction and airport ranking.
	CauseYearFrom         int
	CauseYearTo           int
	TopAirportsMinFlights float64
	TopAirportsLimit      int
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	yearFrom, err := parsePositiveInt("CAUSE_YEAR_FROM", 2014)
	if err != nil {
		return nil, err
	}
	yearTo, err := parsePositiveInt("CAUSE_YEAR_TO", 2019)
	if err != nil {
		return nil, err
	}
	minFlights, err := parsePositiveInt("TOP_AIRPORTS_MIN_FLIGHTS", 100000)
	if err != nil {
		return nil, err
	}
	limit, err := parsePositiveInt("TOP_AIRPORTS_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		TrendDataPath:   sharedcfg.EnvOrDefault("TREND_DATA_PATH", "data/delays_updated.csv"),
		CauseDataPath:   sharedcfg.EnvOrDefault("CAUSE_DATA_PATH", "data/delays_transformed.csv"),
		AirportDataPath: sharedcfg.EnvOrDefault("AIRPORT_DATA_PATH", "data/delays_reduced.csv"),

		CauseYearFrom:         yearFrom,
		CauseYearTo:           yearTo,
		TopAirportsMinFlights: float64(minFlights),
		TopAirportsLimit:      limit,
	}

	if cfg.CauseYearFrom > cfg.CauseYearTo {
		return nil, errors.New("invalid CAUSE_YEAR_FROM: must not be after CAUSE_YEAR_TO")
	}

	return cfg, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
