package domain

import (
	"fmt"
	"sort"
	"strings"
)

// TrendFilter holds the trend view selections.
type TrendFilter struct {
	Season   Season   `json:"season,omitempty"`
	Carriers []string `json:"carriers,omitempty"`
	Airports []string `json:"airports,omitempty"` // airport codes
}

// Spec converts the selections into a FilterSpec matching airports by code.
func (f TrendFilter) Spec() FilterSpec {
	return FilterSpec{
		Season:       f.Season,
		Carriers:     f.Carriers,
		Airports:     f.Airports,
		AirportMatch: MatchCode,
	}
}

// TrendView is the trend analysis result.
type TrendView struct {
	Filter       TrendFilter   `json:"filter"`
	Rows         int           `json:"rows"`
	KPIs         TrendKPIs     `json:"kpis"`
	GroupKey     GroupKey      `json:"group_key,omitempty"`
	Groups       []string      `json:"groups,omitempty"`
	DelayMinutes []SeriesPoint `json:"delay_minutes"`
	DelayRate    []SeriesPoint `json:"delay_rate"`
}

// Empty reports whether no records matched the filter.
func (v TrendView) Empty() bool { return v.Rows == 0 }

// ComputeTrendView filters the trend dataset and builds the monthly mean delay
// and delay rate series, split by carrier or airport when several are selected.
func ComputeTrendView(records []FlightDelayRecord, f TrendFilter) TrendView {
	filtered := f.Spec().Apply(records)
	key := SelectGroupKey(f.Carriers, f.Airports)

	v := TrendView{
		Filter:       f,
		Rows:         len(filtered),
		KPIs:         SummarizeTrend(filtered),
		GroupKey:     key,
		DelayMinutes: Aggregate(filtered, key, MetricDelayMinutes, ReduceMean),
		DelayRate:    Aggregate(filtered, key, MetricDelayRate, ReduceMean),
	}
	if key != GroupNone {
		v.Groups = Groups(v.DelayRate)
	}
	return v
}

// CauseFilter holds the cause breakdown selections. Empty fields are unset.
type CauseFilter struct {
	Airport string `json:"airport,omitempty"` // cleansed airport name
	Carrier string `json:"carrier,omitempty"`
	Season  Season `json:"season,omitempty"`
}

// Spec converts the selections into a FilterSpec matching airports by a
// case-insensitive substring of the cleansed name.
func (f CauseFilter) Spec() FilterSpec {
	spec := FilterSpec{Season: f.Season, AirportMatch: MatchNameContains}
	if f.Airport != "" {
		spec.Airports = []string{f.Airport}
	}
	if f.Carrier != "" {
		spec.Carriers = []string{f.Carrier}
	}
	return spec
}

// CauseView is the cause breakdown result.
type CauseView struct {
	Filter    CauseFilter    `json:"filter"`
	Title     string         `json:"title"`
	Rows      int            `json:"rows"`
	Breakdown CauseBreakdown `json:"breakdown"`
}

// ComputeCauseView filters the cause dataset and splits the matching arrivals
// across delay causes. period is the year range the dataset was restricted to
// at load and only feeds the title.
func ComputeCauseView(records []FlightDelayRecord, f CauseFilter, period Range) CauseView {
	filtered := f.Spec().Apply(records)
	return CauseView{
		Filter:    f,
		Title:     CauseTitle(f, period),
		Rows:      len(filtered),
		Breakdown: BreakdownCauses(filtered),
	}
}

// CauseTitle describes the selections, e.g.
// "Percentage of Historical Delays (2014-2019) at Newark Liberty International Airport with United Air Lines Inc. in Winter".
func CauseTitle(f CauseFilter, period Range) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Percentage of Historical Delays (%d-%d)", period.Lo, period.Hi)
	switch {
	case f.Airport != "" && f.Carrier != "":
		fmt.Fprintf(&b, " at %s Airport with %s", f.Airport, f.Carrier)
	case f.Airport != "":
		fmt.Fprintf(&b, " at %s Airport", f.Airport)
	case f.Carrier != "":
		fmt.Fprintf(&b, " for %s", f.Carrier)
	}
	if f.Season != SeasonNone {
		fmt.Fprintf(&b, " in %s", f.Season)
	}
	return b.String()
}

// AirportFilter holds the airport analysis selections.
type AirportFilter struct {
	Carrier  string   `json:"carrier,omitempty"`  // "" or "All" for every carrier
	Airports []string `json:"airports,omitempty"` // "City (CODE)" labels
	Years    *Range   `json:"years,omitempty"`
	Months   *Range   `json:"months,omitempty"`
}

// Spec converts the selections into a FilterSpec matching airports by display
// label.
func (f AirportFilter) Spec() FilterSpec {
	spec := FilterSpec{
		Airports:     f.Airports,
		AirportMatch: MatchDisplayLabel,
		Years:        f.Years,
		Months:       f.Months,
	}
	if f.Carrier != "" && f.Carrier != OptionAll {
		spec.Carriers = []string{f.Carrier}
	}
	return spec
}

// AirportChartLimit is the number of airports shown in the median delay chart.
const AirportChartLimit = 10

// AirportView is the airport analysis result.
type AirportView struct {
	Filter      AirportFilter       `json:"filter"`
	KPIs        AirportKPIs         `json:"kpis"`
	MedianDelay []Bucket            `json:"median_delay"`
	Rows        []FlightDelayRecord `json:"rows"`
}

// ComputeAirportView filters the airport dataset, summarizes it and computes
// the median delay of the first AirportChartLimit airport codes.
func ComputeAirportView(records []FlightDelayRecord, f AirportFilter) AirportView {
	filtered := f.Spec().Apply(records)
	median := AggregateBy(filtered, func(r *FlightDelayRecord) string { return r.AirportCode }, MetricDelayMinutes, ReduceMedian)
	if len(median) > AirportChartLimit {
		median = median[:AirportChartLimit]
	}
	return AirportView{
		Filter:      f,
		KPIs:        SummarizeAirports(filtered),
		MedianDelay: median,
		Rows:        filtered,
	}
}

// TrendOptions enumerates the trend view choices.
type TrendOptions struct {
	Seasons  []string `json:"seasons"`
	Carriers []string `json:"carriers"`
	Airports []string `json:"airports"`
}

// CollectTrendOptions lists "All" plus the seasons, and the distinct carriers
// and airport codes of the dataset.
func CollectTrendOptions(records []FlightDelayRecord) TrendOptions {
	return TrendOptions{
		Seasons:  SeasonOptions(),
		Carriers: Distinct(records, func(r *FlightDelayRecord) string { return r.CarrierName }),
		Airports: Distinct(records, func(r *FlightDelayRecord) string { return r.AirportCode }),
	}
}

// CauseOptions enumerates the cause view choices.
type CauseOptions struct {
	Airports []string `json:"airports"`
	Carriers []string `json:"carriers"`
	Seasons  []string `json:"seasons"`
}

// CollectCauseOptions offers the ranked airports and the carriers operating at
// the selected airport (every carrier when airport is empty). The airport is
// one of the ranked cleansed names, so it is matched exactly.
func CollectCauseOptions(records []FlightDelayRecord, ranked []AirportRisk, airport string) CauseOptions {
	carriers := records
	if airport != "" {
		carriers = FilterSpec{Airports: []string{airport}, AirportMatch: MatchName}.Apply(records)
	}
	seasons := make([]string, len(Seasons))
	for i, s := range Seasons {
		seasons[i] = string(s)
	}
	return CauseOptions{
		Airports: AirportNames(ranked),
		Carriers: Distinct(carriers, func(r *FlightDelayRecord) string { return r.CarrierName }),
		Seasons:  seasons,
	}
}

// AirportOptions enumerates the airport view choices.
type AirportOptions struct {
	Carriers []string `json:"carriers"`
	Airports []string `json:"airports"`
	Years    Range    `json:"years"`
	Months   Range    `json:"months"`
}

// CollectAirportOptions lists "All" plus the carriers, the airport labels and
// the year span of the dataset.
func CollectAirportOptions(records []FlightDelayRecord) AirportOptions {
	return AirportOptions{
		Carriers: append([]string{OptionAll}, Distinct(records, func(r *FlightDelayRecord) string { return r.CarrierName })...),
		Airports: Distinct(records, func(r *FlightDelayRecord) string { return r.DisplayLabel() }),
		Years:    YearSpan(records),
		Months:   Range{Lo: 1, Hi: 12},
	}
}

// SeasonOptions returns "All" followed by the seasons in calendar order.
func SeasonOptions() []string {
	out := []string{OptionAll}
	for _, s := range Seasons {
		out = append(out, string(s))
	}
	return out
}

// Distinct returns the sorted distinct non-empty values of keyFn.
func Distinct(records []FlightDelayRecord, keyFn func(*FlightDelayRecord) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range records {
		k := keyFn(&records[i])
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// YearSpan returns the smallest and largest year in the records, or the zero
// Range when there are none.
func YearSpan(records []FlightDelayRecord) Range {
	if len(records) == 0 {
		return Range{}
	}
	span := Range{Lo: records[0].Year, Hi: records[0].Year}
	for i := range records[1:] {
		y := records[i+1].Year
		if y < span.Lo {
			span.Lo = y
		}
		if y > span.Hi {
			span.Hi = y
		}
	}
	return span
}
