package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

func newRankCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the airports with the highest delay percentage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cause, _ := opts.sources()
			records, err := opts.loader(cmd.ErrOrStderr()).Load(cmd.Context(), cause)
			if err != nil {
				return err
			}

			ranked := domain.RankAirports(records, opts.minFlights, opts.limit)

			tbl := newTable(cmd.OutOrStdout())
			tbl.SetTitle("Top airports by delay percentage (%d-%d, at least %s flights)",
				opts.yearFrom, opts.yearTo, humanize.Comma(int64(opts.minFlights)))
			tbl.AppendHeader(table.Row{"#", "Airport", "Flights", "Delayed", "Delay %"})
			for i, r := range ranked {
				tbl.AppendRow(table.Row{
					i + 1,
					r.AirportName,
					humanize.Comma(int64(r.TotalFlights)),
					humanize.Comma(int64(r.TotalDelays)),
					domain.FormatRate(r.DelayPct),
				})
			}
			tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d airports", len(ranked))})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().Float64Var(&opts.minFlights, "min-flights", domain.DefaultRankMinFlights, "minimum arrivals for an airport to be ranked (default $TOP_AIRPORTS_MIN_FLIGHTS)")
	cmd.Flags().IntVar(&opts.limit, "limit", domain.DefaultRankLimit, "number of airports to print (default $TOP_AIRPORTS_LIMIT)")
	return cmd
}
