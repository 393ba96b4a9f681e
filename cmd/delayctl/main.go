// Command delayctl validates the flight delay datasets and prints rankings and
// trend summaries from the command line.
//
// Usage:
//
//	delayctl validate
//	delayctl rank --limit 5
//	delayctl summary --season Winter --carrier "Alaska Airlines Inc." --carrier "Delta Air Lines Inc."
//
// Dataset paths default to TREND_DATA_PATH, CAUSE_DATA_PATH and
// AIRPORT_DATA_PATH and can be overridden with flags.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/flight-delay-insights/internal/adapter/csvsource"
	"github.com/couchcryptid/flight-delay-insights/internal/config"
	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the dataset locations shared by every subcommand.
type globalOptions struct {
	trendPath   string
	causePath   string
	airportPath string
	yearFrom    int
	yearTo      int
	minFlights  float64
	limit       int
	verbose     bool
}

func (o *globalOptions) sources() (trend, cause, airport domain.Source) {
	return domain.Source{Kind: domain.DatasetTrend, Path: o.trendPath},
		domain.Source{Kind: domain.DatasetCause, Path: o.causePath, Years: &domain.Range{Lo: o.yearFrom, Hi: o.yearTo}},
		domain.Source{Kind: domain.DatasetAirport, Path: o.airportPath}
}

func (o *globalOptions) loader(stderr io.Writer) *csvsource.Loader {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return csvsource.NewLoader(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "delayctl",
		Short:         "Inspect the airline on-time performance datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyConfigDefaults(cmd, opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.trendPath, "trend", "", "trend dataset CSV (default $TREND_DATA_PATH)")
	flags.StringVar(&opts.causePath, "cause", "", "cause dataset CSV (default $CAUSE_DATA_PATH)")
	flags.StringVar(&opts.airportPath, "airport", "", "airport dataset CSV (default $AIRPORT_DATA_PATH)")
	flags.IntVar(&opts.yearFrom, "year-from", 0, "first year of the cause dataset (default $CAUSE_YEAR_FROM)")
	flags.IntVar(&opts.yearTo, "year-to", 0, "last year of the cause dataset (default $CAUSE_YEAR_TO)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log dataset loading")

	root.AddCommand(newValidateCommand(opts))
	root.AddCommand(newRankCommand(opts))
	root.AddCommand(newSummaryCommand(opts))
	return root
}

// applyConfigDefaults fills every flag left unset from the environment.
func applyConfigDefaults(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("trend") {
		opts.trendPath = cfg.TrendDataPath
	}
	if !flags.Changed("cause") {
		opts.causePath = cfg.CauseDataPath
	}
	if !flags.Changed("airport") {
		opts.airportPath = cfg.AirportDataPath
	}
	if !flags.Changed("year-from") {
		opts.yearFrom = cfg.CauseYearFrom
	}
	if !flags.Changed("year-to") {
		opts.yearTo = cfg.CauseYearTo
	}
	if !flags.Changed("min-flights") {
		opts.minFlights = cfg.TopAirportsMinFlights
	}
	if !flags.Changed("limit") {
		opts.limit = cfg.TopAirportsLimit
	}
	if opts.yearFrom > opts.yearTo {
		return fmt.Errorf("--year-from %d is after --year-to %d", opts.yearFrom, opts.yearTo)
	}
	return nil
}

func newTable(out io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	return tbl
}
