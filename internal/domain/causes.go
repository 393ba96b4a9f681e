package domain

// Cause labels in display order.
const (
	CauseCarrier      = "Carrier"
	CauseWeather      = "Weather"
	CauseNAS          = "NAS"
	CauseSecurity     = "Security"
	CauseLateAircraft = "Late Aircraft"
)

// CauseShare is the fraction of arrivals attributed to one delay cause.
type CauseShare struct {
	Cause string  `json:"cause"`
	Count float64 `json:"count"`
	Share float64 `json:"share"`
}

// CauseBreakdown splits arrivals across the BTS delay causes.
type CauseBreakdown struct {
	Available    bool         `json:"available"`
	TotalFlights float64      `json:"total_flights"`
	TotalDelayed float64      `json:"total_delayed"`
	OnTimeShare  float64      `json:"on_time_share"`
	Shares       []CauseShare `json:"shares"`
}

// BreakdownCauses sums cause counts over the records and divides each by the
// total number of arrivals. With no arrivals the breakdown is unavailable and
// every share is 0.
func BreakdownCauses(records []FlightDelayRecord) CauseBreakdown {
	var counts CauseCounts
	var flights, delayed float64
	for i := range records {
		counts = counts.Add(records[i].Causes)
		flights += records[i].ArrivalFlights
		delayed += records[i].ArrivalDelayed15
	}

	b := CauseBreakdown{
		Available:    flights > 0,
		TotalFlights: flights,
		TotalDelayed: delayed,
		OnTimeShare:  Ratio(flights-delayed, flights),
	}
	for _, c := range []struct {
		label string
		count float64
	}{
		{CauseCarrier, counts.Carrier},
		{CauseWeather, counts.Weather},
		{CauseNAS, counts.NAS},
		{CauseSecurity, counts.Security},
		{CauseLateAircraft, counts.LateAircraft},
	} {
		b.Shares = append(b.Shares, CauseShare{Cause: c.label, Count: c.count, Share: Ratio(c.count, flights)})
	}
	return b
}
