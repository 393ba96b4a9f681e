package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

type summaryOptions struct {
	season   string
	carriers []string
	airports []string
	metric   string
	reducer  string
}

func newSummaryCommand(opts *globalOptions) *cobra.Command {
	so := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print trend KPIs and the monthly series for a filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			season, err := domain.ParseSeason(so.season)
			if err != nil {
				return err
			}
			metric, err := domain.ParseMetric(so.metric)
			if err != nil {
				return err
			}
			reducer, err := domain.ParseReducer(so.reducer)
			if err != nil {
				return err
			}

			trend, _, _ := opts.sources()
			records, err := opts.loader(cmd.ErrOrStderr()).Load(cmd.Context(), trend)
			if err != nil {
				return err
			}

			f := domain.TrendFilter{Season: season, Carriers: so.carriers, Airports: so.airports}
			filtered := f.Spec().Apply(records)
			out := cmd.OutOrStdout()
			if len(filtered) == 0 {
				fmt.Fprintln(out, "No data for the current filters")
				return nil
			}

			kpis := domain.SummarizeTrend(filtered)
			fmt.Fprintf(out, "Rows: %d  Average delay: %s min  Average delay rate: %s\n",
				len(filtered), domain.FormatMinutes(kpis.AvgDelayMinutes), domain.FormatRate(kpis.AvgDelayRate))

			key := domain.SelectGroupKey(f.Carriers, f.Airports)
			group := "Group"
			if key != domain.GroupNone {
				group = string(key)
			}

			tbl := newTable(out)
			tbl.AppendHeader(table.Row{"Month", group, fmt.Sprintf("%s(%s)", reducer, metric)})
			for _, p := range domain.Aggregate(filtered, key, metric, reducer) {
				tbl.AppendRow(table.Row{p.Date.Format("2006-01"), p.Group, fmt.Sprintf("%.3f", p.Value)})
			}
			tbl.Render()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&so.season, "season", domain.OptionAll, "season filter: All, Winter, Spring, Summer or Fall")
	flags.StringArrayVar(&so.carriers, "carrier", nil, "carrier name; repeat to compare carriers")
	flags.StringArrayVar(&so.airports, "airport-code", nil, "airport code; repeat to compare airports")
	flags.StringVar(&so.metric, "metric", string(domain.MetricDelayMinutes), "metric to aggregate")
	flags.StringVar(&so.reducer, "reducer", string(domain.ReduceMean), "reducer: mean, sum or median")
	return cmd
}
