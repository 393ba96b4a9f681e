package csvsource

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

// Column names used by the BTS exports.
const (
	colYear         = "year"
	colMonth        = "month"
	colCarrier      = "carrier_name"
	colAirportCode  = "airport_code"
	colAirportName  = "airport_name_cleansed"
	colCity         = "city"
	colArrFlights   = "arr_flights"
	colArrDel15     = "arr_del15"
	colArrDelay     = "arr_delay"
	colAvgDelayMin  = "avg_delay_min"
	colCarrierCt    = "carrier_ct"
	colWeatherCt    = "weather_ct"
	colNASCt        = "nas_ct"
	colSecurityCt   = "security_ct"
	colLateAircraft = "late_aircraft_ct"
)

// ErrEmptySource is returned when a file has no data rows.
var ErrEmptySource = errors.New("data source is empty")

// Schema lists the columns a dataset must provide.
type Schema struct {
	Kind     domain.DatasetKind
	Required []string
	// DelayColumn feeds FlightDelayRecord.ArrivalDelayMinutes.
	DelayColumn string
}

var schemas = map[domain.DatasetKind]Schema{
	domain.DatasetTrend: {
		Kind:        domain.DatasetTrend,
		Required:    []string{colYear, colMonth, colCarrier, colAirportCode, colArrFlights, colArrDel15, colAvgDelayMin},
		DelayColumn: colAvgDelayMin,
	},
	domain.DatasetCause: {
		Kind: domain.DatasetCause,
		Required: []string{
			colYear, colMonth, colCarrier, colAirportName, colArrFlights, colArrDel15,
			colCarrierCt, colWeatherCt, colNASCt, colSecurityCt, colLateAircraft,
		},
	},
	domain.DatasetAirport: {
		Kind:        domain.DatasetAirport,
		Required:    []string{colYear, colMonth, colCarrier, colAirportCode, colCity, colArrDel15, colArrDelay},
		DelayColumn: colArrDelay,
	},
}

// SchemaFor returns the schema of a dataset kind.
func SchemaFor(kind domain.DatasetKind) (Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return Schema{}, fmt.Errorf("unknown dataset kind %q", kind)
	}
	return s, nil
}

// SchemaError reports a required column absent from the file header.
type SchemaError struct {
	Dataset domain.DatasetKind
	Column  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s dataset: missing required column %q", e.Dataset, e.Column)
}

// RowError reports a value that cannot be turned into a valid record.
// Row is 1-based and counts data rows, not the header.
type RowError struct {
	Dataset domain.DatasetKind
	Row     int
	Column  string
	Value   string
	Reason  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s dataset: row %d column %q value %q: %s", e.Dataset, e.Row, e.Column, e.Value, e.Reason)
}

// Validate checks that every required column is present.
func (s Schema) Validate(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	for _, c := range s.Required {
		if _, ok := present[c]; !ok {
			return &SchemaError{Dataset: s.Kind, Column: c}
		}
	}
	return nil
}
