package domain

import "time"

// FlightDelayRecord is one (airport, carrier, year, month) observation period.
type FlightDelayRecord struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	AirportCode string `json:"airport_code"`
	AirportName string `json:"airport_name_cleansed,omitempty"`
	City        string `json:"city,omitempty"`
	CarrierName string `json:"carrier_name"`

	ArrivalFlights      float64 `json:"arr_flights"`
	ArrivalDelayed15    float64 `json:"arr_del15"`
	ArrivalDelayMinutes float64 `json:"arr_delay"`
	// DelayMinutesMissing marks a blank delay cell. ArrivalDelayMinutes is 0
	// then and is left out of every delay average and median.
	DelayMinutesMissing bool `json:"arr_delay_missing,omitempty"`

	Causes CauseCounts `json:"causes"`

	// Derived at load by Derive.
	Date      time.Time `json:"date"`
	DelayRate float64   `json:"delay_rate"`
	Season    Season    `json:"season"`
}

// CauseCounts holds delayed arrivals attributed to each BTS delay cause.
type CauseCounts struct {
	Carrier      float64 `json:"carrier_ct"`
	Weather      float64 `json:"weather_ct"`
	NAS          float64 `json:"nas_ct"`
	Security     float64 `json:"security_ct"`
	LateAircraft float64 `json:"late_aircraft_ct"`
}

// Add returns the element-wise sum of c and o.
func (c CauseCounts) Add(o CauseCounts) CauseCounts {
	return CauseCounts{
		Carrier:      c.Carrier + o.Carrier,
		Weather:      c.Weather + o.Weather,
		NAS:          c.NAS + o.NAS,
		Security:     c.Security + o.Security,
		LateAircraft: c.LateAircraft + o.LateAircraft,
	}
}

// DisplayLabel returns the airport label shown in pickers, e.g. "Seattle, WA (SEA)".
func (r FlightDelayRecord) DisplayLabel() string {
	return AirportLabel(r.City, r.AirportCode)
}

// AirportLabel formats a city and airport code as "City (CODE)".
func AirportLabel(city, code string) string {
	return city + " (" + code + ")"
}

// Derive fills the derived fields of a freshly parsed record.
// It is deterministic and idempotent.
func Derive(r FlightDelayRecord) FlightDelayRecord {
	r.Date = MonthStart(r.Year, r.Month)
	r.DelayRate = DelayRate(r.ArrivalDelayed15, r.ArrivalFlights)
	r.Season = SeasonOf(r.Month)
	return r
}

// MonthStart returns midnight UTC on the first day of the given month.
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// DelayRate returns delayed/flights, or 0 when there were no flights.
// The result is clamped to [0, 1].
func DelayRate(delayed, flights float64) float64 {
	if flights <= 0 || delayed <= 0 {
		return 0
	}
	if delayed >= flights {
		return 1
	}
	return delayed / flights
}
