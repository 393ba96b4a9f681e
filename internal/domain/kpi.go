package domain

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// NotAvailable is the display value of a metric computed over no rows.
const NotAvailable = "N/A"

// KPI is a headline value with an availability flag. An unavailable value is 0
// so it never carries NaN into JSON.
type KPI struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

func available(v float64) KPI { return KPI{Value: v, Available: true} }

// meanDelay averages the delay minutes of the records that report one.
// It is unavailable when none do.
func meanDelay(records []FlightDelayRecord) KPI {
	var sum float64
	var n int
	for i := range records {
		if records[i].DelayMinutesMissing {
			continue
		}
		sum += records[i].ArrivalDelayMinutes
		n++
	}
	if n == 0 {
		return KPI{}
	}
	return available(sum / float64(n))
}

// TrendKPIs are the headline metrics of the trend view.
type TrendKPIs struct {
	AvgDelayMinutes KPI     `json:"avg_delay_minutes"`
	AvgDelayRate    float64 `json:"avg_delay_rate"`
}

// SummarizeTrend averages delay minutes over the rows that report a delay and
// delay rate over every row. The delay rate is 0 for an empty view.
func SummarizeTrend(records []FlightDelayRecord) TrendKPIs {
	if len(records) == 0 {
		return TrendKPIs{}
	}
	var rate float64
	for i := range records {
		rate += records[i].DelayRate
	}
	return TrendKPIs{
		AvgDelayMinutes: meanDelay(records),
		AvgDelayRate:    rate / float64(len(records)),
	}
}

// AirportKPIs are the headline metrics of the airport view.
type AirportKPIs struct {
	AvgDelayMinutes KPI `json:"avg_delay_minutes"`
	Rows            KPI `json:"rows"`
	DelayedPct      KPI `json:"delayed_pct"`
}

// SummarizeAirports computes mean delay, row count and the percentage of rows
// with exactly one delayed arrival. Every metric is unavailable for an empty
// view; the mean delay is also unavailable when no row reports a delay.
func SummarizeAirports(records []FlightDelayRecord) AirportKPIs {
	if len(records) == 0 {
		return AirportKPIs{}
	}
	var delayed int
	for i := range records {
		if records[i].ArrivalDelayed15 == 1 {
			delayed++
		}
	}
	n := float64(len(records))
	return AirportKPIs{
		AvgDelayMinutes: meanDelay(records),
		Rows:            available(n),
		DelayedPct:      available(float64(delayed) / n * 100),
	}
}

// FormatMinutes renders a delay in minutes with one decimal, or N/A.
func FormatMinutes(k KPI) string {
	if !k.Available {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f", k.Value)
}

// FormatCount renders a count with thousands separators. An unavailable count
// renders as "0".
func FormatCount(k KPI) string {
	if !k.Available {
		return "0"
	}
	return humanize.Comma(int64(k.Value))
}

// FormatPercent renders a 0-100 percentage with one decimal, or N/A.
func FormatPercent(k KPI) string {
	if !k.Available {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", k.Value)
}

// FormatRate renders a 0-1 fraction as a percentage with one decimal.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
