// Package csvsource loads BTS on-time performance CSV exports into derived
// domain records.
package csvsource

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

// naValues are the cell contents treated as missing.
var naValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// Loader reads CSV files. It implements domain.RecordLoader.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a CSV loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the file at src.Path, validates it against the schema of
// src.Kind and returns derived records. It fails on an empty file, a missing
// required column or any invalid row; nothing is returned partially.
func (l *Loader) Load(ctx context.Context, src domain.Source) ([]domain.FlightDelayRecord, error) {
	schema, err := SchemaFor(src.Kind)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s dataset: %w", src.Kind, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s dataset %s: %w", src.Kind, src.Path, ErrEmptySource)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := Decode(data, schema)
	if err != nil {
		return nil, err
	}

	total := len(records)
	if src.Years != nil {
		records = domain.FilterSpec{Years: src.Years}.Apply(records)
	}

	l.logger.Info("dataset loaded",
		"dataset", src.Kind,
		"path", src.Path,
		"rows", total,
		"kept", len(records),
	)
	return records, nil
}

// Decode parses CSV bytes into derived records according to the schema.
func Decode(data []byte, schema Schema) ([]domain.FlightDelayRecord, error) {
	if !bytes.ContainsRune(bytes.TrimSpace(data), '\n') {
		return nil, fmt.Errorf("%s dataset: %w", schema.Kind, ErrEmptySource)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse %s dataset: %w", schema.Kind, df.Err)
	}
	if err := schema.Validate(df.Names()); err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%s dataset: %w", schema.Kind, ErrEmptySource)
	}

	c := columns{kind: schema.Kind, cols: make(map[string]series.Series)}
	for _, name := range df.Names() {
		c.cols[name] = df.Col(name)
	}

	records := make([]domain.FlightDelayRecord, df.Nrow())
	for i := range records {
		rec, err := c.record(i, schema)
		if err != nil {
			return nil, err
		}
		records[i] = domain.Derive(rec)
	}
	return records, nil
}

// columns reads typed cells out of the string columns of a dataframe.
type columns struct {
	kind domain.DatasetKind
	cols map[string]series.Series
}

func (c columns) has(name string) bool {
	_, ok := c.cols[name]
	return ok
}

func (c columns) record(i int, schema Schema) (domain.FlightDelayRecord, error) {
	var rec domain.FlightDelayRecord
	var err error

	if rec.Year, err = c.integer(i, colYear); err != nil {
		return rec, err
	}
	if rec.Month, err = c.integer(i, colMonth); err != nil {
		return rec, err
	}
	if rec.Month < 1 || rec.Month > 12 {
		return rec, c.rowError(i, colMonth, "month must be between 1 and 12")
	}

	rec.CarrierName = c.text(i, colCarrier)
	rec.AirportCode = c.text(i, colAirportCode)
	rec.AirportName = c.text(i, colAirportName)
	rec.City = c.text(i, colCity)

	counts := []struct {
		col string
		dst *float64
	}{
		{colArrFlights, &rec.ArrivalFlights},
		{colArrDel15, &rec.ArrivalDelayed15},
		{colCarrierCt, &rec.Causes.Carrier},
		{colWeatherCt, &rec.Causes.Weather},
		{colNASCt, &rec.Causes.NAS},
		{colSecurityCt, &rec.Causes.Security},
		{colLateAircraft, &rec.Causes.LateAircraft},
	}
	for _, f := range counts {
		if *f.dst, err = c.count(i, f.col); err != nil {
			return rec, err
		}
	}
	if c.has(colArrFlights) && rec.ArrivalDelayed15 > rec.ArrivalFlights {
		return rec, c.rowError(i, colArrDel15, "delayed arrivals exceed arr_flights")
	}

	if schema.DelayColumn != "" {
		var present bool
		if rec.ArrivalDelayMinutes, present, err = c.optional(i, schema.DelayColumn); err != nil {
			return rec, err
		}
		rec.DelayMinutesMissing = !present
	}
	return rec, nil
}

func (c columns) cell(i int, name string) (series.Element, bool) {
	if !c.has(name) {
		return nil, false
	}
	e := c.cols[name].Elem(i)
	if e.IsNA() {
		return e, false
	}
	return e, true
}

func (c columns) text(i int, name string) string {
	e, ok := c.cell(i, name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(e.String())
}

// integer parses a required whole number. Values such as "2015.0" are accepted.
func (c columns) integer(i int, name string) (int, error) {
	e, ok := c.cell(i, name)
	if !ok {
		return 0, c.rowError(i, name, "value is missing")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.String()), 64)
	if err != nil || v != math.Trunc(v) {
		return 0, c.rowError(i, name, "not a whole number")
	}
	return int(v), nil
}

// optional parses a number that may be negative and reports whether the cell
// held one.
func (c columns) optional(i int, name string) (float64, bool, error) {
	e, ok := c.cell(i, name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.String()), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, c.rowError(i, name, "not a number")
	}
	return v, true, nil
}

// real parses a number that may be negative. Missing values are 0.
func (c columns) real(i int, name string) (float64, error) {
	v, _, err := c.optional(i, name)
	return v, err
}

// count parses a non-negative number. Missing values are 0.
func (c columns) count(i int, name string) (float64, error) {
	v, err := c.real(i, name)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, c.rowError(i, name, "must not be negative")
	}
	return v, nil
}

func (c columns) rowError(i int, name, reason string) error {
	value := ""
	if c.has(name) {
		value = c.cols[name].Elem(i).String()
	}
	return &RowError{Dataset: c.kind, Row: i + 1, Column: name, Value: value, Reason: reason}
}
