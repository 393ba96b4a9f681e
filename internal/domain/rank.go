package domain

import "sort"

const (
	// DefaultRankMinFlights is the arrival volume an airport needs over the
	// whole dataset before its delay percentage is considered significant.
	DefaultRankMinFlights = 100000
	// DefaultRankLimit is the number of airports kept by RankAirports.
	DefaultRankLimit = 10
)

// AirportRisk is an airport's delay percentage over the ranked dataset.
type AirportRisk struct {
	AirportName  string  `json:"airport_name"`
	TotalFlights float64 `json:"total_flights"`
	TotalDelays  float64 `json:"total_delays"`
	DelayPct     float64 `json:"delay_pct"`
}

// RankAirports groups records by cleansed airport name, drops airports with
// fewer than minFlights arrivals and returns up to limit airports ordered by
// delay percentage, highest first. Ties keep ascending name order.
func RankAirports(records []FlightDelayRecord, minFlights float64, limit int) []AirportRisk {
	totals := make(map[string]*AirportRisk)
	for i := range records {
		r := &records[i]
		t, ok := totals[r.AirportName]
		if !ok {
			t = &AirportRisk{AirportName: r.AirportName}
			totals[r.AirportName] = t
		}
		t.TotalFlights += r.ArrivalFlights
		t.TotalDelays += r.ArrivalDelayed15
	}

	ranked := make([]AirportRisk, 0, len(totals))
	for _, t := range totals {
		if t.TotalFlights < minFlights {
			continue
		}
		t.DelayPct = Ratio(t.TotalDelays, t.TotalFlights)
		ranked = append(ranked, *t)
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].AirportName < ranked[j].AirportName })
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].DelayPct > ranked[j].DelayPct })

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// AirportNames returns the names of the ranked airports in rank order.
func AirportNames(ranked []AirportRisk) []string {
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.AirportName
	}
	return names
}
