package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Metric names a numeric column of FlightDelayRecord.
type Metric string

const (
	MetricDelayMinutes      Metric = "delay_minutes"
	MetricDelayRate         Metric = "delay_rate"
	MetricArrivalFlights    Metric = "arr_flights"
	MetricArrivalDelayed15  Metric = "arr_del15"
	MetricCarrierCount      Metric = "carrier_ct"
	MetricWeatherCount      Metric = "weather_ct"
	MetricNASCount          Metric = "nas_ct"
	MetricSecurityCount     Metric = "security_ct"
	MetricLateAircraftCount Metric = "late_aircraft_ct"
)

// Value extracts the metric from a record. Unknown metrics yield 0.
func (m Metric) Value(r *FlightDelayRecord) float64 {
	switch m {
	case MetricDelayMinutes:
		return r.ArrivalDelayMinutes
	case MetricDelayRate:
		return r.DelayRate
	case MetricArrivalFlights:
		return r.ArrivalFlights
	case MetricArrivalDelayed15:
		return r.ArrivalDelayed15
	case MetricCarrierCount:
		return r.Causes.Carrier
	case MetricWeatherCount:
		return r.Causes.Weather
	case MetricNASCount:
		return r.Causes.NAS
	case MetricSecurityCount:
		return r.Causes.Security
	case MetricLateAircraftCount:
		return r.Causes.LateAircraft
	default:
		return 0
	}
}

// Missing reports whether the record has no value for the metric. Only delay
// minutes can be missing; counts default to 0.
func (m Metric) Missing(r *FlightDelayRecord) bool {
	return m == MetricDelayMinutes && r.DelayMinutesMissing
}

// Reducer collapses the values of one group into a single number.
type Reducer string

const (
	ReduceMean   Reducer = "mean"
	ReduceSum    Reducer = "sum"
	ReduceMedian Reducer = "median"
)

// Reduce applies the reducer. An empty input reduces to 0.
func (r Reducer) Reduce(values []float64) float64 {
	switch r {
	case ReduceSum:
		return Sum(values)
	case ReduceMedian:
		return Median(values)
	default:
		return Mean(values)
	}
}

// SeriesPoint is one reduced value of a time series, optionally tagged with
// the group it belongs to.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Group string    `json:"group,omitempty"`
	Value float64   `json:"value"`
}

// Bucket is one reduced value of a categorical grouping.
type Bucket struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type seriesKey struct {
	date  time.Time
	group string
}

// Aggregate groups records by (Date, group) and reduces the metric within each
// group. Records missing the metric are skipped, so a group with no values
// yields no point. Points are ordered by date, then group. An empty input
// returns an empty, non-nil slice.
func Aggregate(records []FlightDelayRecord, key GroupKey, metric Metric, reducer Reducer) []SeriesPoint {
	groups := make(map[seriesKey][]float64)
	for i := range records {
		if metric.Missing(&records[i]) {
			continue
		}
		k := seriesKey{date: records[i].Date, group: key.Value(&records[i])}
		groups[k] = append(groups[k], metric.Value(&records[i]))
	}

	points := make([]SeriesPoint, 0, len(groups))
	for k, values := range groups {
		points = append(points, SeriesPoint{Date: k.date, Group: k.group, Value: reducer.Reduce(values)})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].Group < points[j].Group
	})
	return points
}

// AggregateBy groups records by an arbitrary key and reduces the metric within
// each group. Records missing the metric are skipped and Count is the number
// of values reduced. Buckets are ordered by key ascending.
func AggregateBy(records []FlightDelayRecord, keyFn func(*FlightDelayRecord) string, metric Metric, reducer Reducer) []Bucket {
	groups := make(map[string][]float64)
	for i := range records {
		if metric.Missing(&records[i]) {
			continue
		}
		k := keyFn(&records[i])
		groups[k] = append(groups[k], metric.Value(&records[i]))
	}

	buckets := make([]Bucket, 0, len(groups))
	for k, values := range groups {
		buckets = append(buckets, Bucket{Key: k, Count: len(values), Value: reducer.Reduce(values)})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

// Groups returns the distinct group names present in the points, sorted.
func Groups(points []SeriesPoint) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range points {
		if _, ok := seen[p.Group]; ok {
			continue
		}
		seen[p.Group] = struct{}{}
		out = append(out, p.Group)
	}
	sort.Strings(out)
	return out
}

// Sum adds the finite values.
func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			s += v
		}
	}
	return s
}

// Mean returns the arithmetic mean, or 0 for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Median returns the middle value (mean of the two middle values for even
// lengths), or 0 for an empty input. The input is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Ratio returns num/den, or 0 when den is not positive.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// ParseMetric validates a metric name.
func ParseMetric(name string) (Metric, error) {
	m := Metric(name)
	switch m {
	case MetricDelayMinutes, MetricDelayRate, MetricArrivalFlights, MetricArrivalDelayed15,
		MetricCarrierCount, MetricWeatherCount, MetricNASCount, MetricSecurityCount, MetricLateAircraftCount:
		return m, nil
	default:
		return "", fmt.Errorf("unknown metric %q", name)
	}
}

// ParseReducer validates a reducer name.
func ParseReducer(name string) (Reducer, error) {
	r := Reducer(name)
	switch r {
	case ReduceMean, ReduceSum, ReduceMedian:
		return r, nil
	default:
		return "", fmt.Errorf("unknown reducer %q", name)
	}
}
