package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

// maxReported caps the problems listed per phase.
const maxReported = 5

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	detail string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func (p *phase) summary() string {
	if p.passed() {
		return p.detail
	}
	shown := p.errors
	if len(shown) > maxReported {
		shown = shown[:maxReported]
	}
	s := strings.Join(shown, "\n")
	if extra := len(p.errors) - len(shown); extra > 0 {
		s += fmt.Sprintf("\n... and %d more", extra)
	}
	return s
}

func newValidateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every dataset and check schema and derived-field invariants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := opts.loader(cmd.ErrOrStderr())
			trend, cause, airport := opts.sources()

			var phases []*phase
			var causeRecords []domain.FlightDelayRecord
			for _, src := range []domain.Source{trend, cause, airport} {
				load := &phase{name: fmt.Sprintf("%s: load", src.Kind)}
				phases = append(phases, load)

				records, err := loader.Load(cmd.Context(), src)
				if err != nil {
					load.errorf("%v", err)
					continue
				}
				load.detail = fmt.Sprintf("%s rows from %s", humanize.Comma(int64(len(records))), src.Path)
				phases = append(phases, validateDerived(src.Kind, records))
				if src.Kind == domain.DatasetCause {
					causeRecords = records
				}
			}
			if causeRecords != nil {
				phases = append(phases, validateRanking(causeRecords, opts))
			}

			tbl := newTable(cmd.OutOrStdout())
			tbl.AppendHeader(table.Row{"Phase", "Result", "Detail"})
			failed := 0
			for _, p := range phases {
				result := "PASS"
				if !p.passed() {
					result = "FAIL"
					failed++
				}
				tbl.AppendRow(table.Row{p.name, result, p.summary()})
			}
			tbl.Render()

			if failed > 0 {
				return fmt.Errorf("validation failed: %d of %d phases", failed, len(phases))
			}
			return nil
		},
	}
}

// validateDerived re-checks the fields computed at load.
func validateDerived(kind domain.DatasetKind, records []domain.FlightDelayRecord) *phase {
	p := &phase{name: fmt.Sprintf("%s: derived fields", kind)}
	for i := range records {
		r := &records[i]
		if r.DelayRate < 0 || r.DelayRate > 1 {
			p.errorf("row %d: delay rate %.4f outside [0, 1]", i+1, r.DelayRate)
		}
		if r.ArrivalFlights == 0 && r.DelayRate != 0 {
			p.errorf("row %d: delay rate %.4f without arrivals", i+1, r.DelayRate)
		}
		if want := domain.SeasonOf(r.Month); r.Season != want {
			p.errorf("row %d: season %q, want %q", i+1, r.Season, want)
		}
		if want := domain.MonthStart(r.Year, r.Month); !r.Date.Equal(want) {
			p.errorf("row %d: date %s, want %s", i+1, r.Date.Format("2006-01"), want.Format("2006-01"))
		}
	}
	if len(records) == 0 {
		p.errorf("no records")
		return p
	}
	span := domain.YearSpan(records)
	p.detail = fmt.Sprintf("years %d-%d", span.Lo, span.Hi)
	return p
}

// validateRanking checks the airport ranking produced from the cause dataset.
func validateRanking(records []domain.FlightDelayRecord, opts *globalOptions) *phase {
	p := &phase{name: "cause: airport ranking"}
	ranked := domain.RankAirports(records, opts.minFlights, opts.limit)
	for i, r := range ranked {
		if r.TotalFlights < opts.minFlights {
			p.errorf("%s: %.0f flights below threshold", r.AirportName, r.TotalFlights)
		}
		if i > 0 && ranked[i-1].DelayPct < r.DelayPct {
			p.errorf("%s ranked below a lower delay percentage", r.AirportName)
		}
	}
	if len(ranked) > opts.limit {
		p.errorf("%d airports ranked, limit %d", len(ranked), opts.limit)
	}
	p.detail = fmt.Sprintf("%d airports with at least %s flights", len(ranked), humanize.Comma(int64(opts.minFlights)))
	return p
}
