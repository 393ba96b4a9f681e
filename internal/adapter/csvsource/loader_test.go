package csvsource

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

const (
	trendCSV = `year,month,carrier_name,airport_code,arr_flights,arr_del15,avg_delay_min,season
2015,1,Alaska Airlines Inc.,SEA,200,50,12.5,Summer
2015,2,Alaska Airlines Inc.,SEA,100,10,6,Winter
2016,3,Delta Air Lines Inc.,PDX,0,0,NA,Spring
`
	causeCSV = `year,month,carrier_name,airport_name_cleansed,arr_flights,arr_del15,carrier_ct,weather_ct,nas_ct,security_ct,late_aircraft_ct
2013,1,United Air Lines Inc.,Newark Liberty International,100,30,10,2,8,0,10
2014,1,United Air Lines Inc.,Newark Liberty International,100,30,10.5,1.5,8,0,10
2019,7,United Air Lines Inc.,Newark Liberty International,120,20,,,,,
2020,1,United Air Lines Inc.,Newark Liberty International,100,30,10,2,8,0,10
`
	airportCSV = `year,month,carrier_name,airport_code,city,arr_del15,arr_delay
2018,5,Alaska Airlines Inc.,SEA,"Seattle, WA",1,-3.5
2018,6,Alaska Airlines Inc.,PDX,"Portland, OR",0,14
`
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestLoader() *Loader {
	return NewLoader(slog.Default())
}

func TestLoad_Trend(t *testing.T) {
	path := writeCSV(t, trendCSV)

	records, err := newTestLoader().Load(context.Background(), domain.Source{Kind: domain.DatasetTrend, Path: path})
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, 2015, first.Year)
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "Alaska Airlines Inc.", first.CarrierName)
	assert.Equal(t, "SEA", first.AirportCode)
	assert.Equal(t, 200.0, first.ArrivalFlights)
	assert.Equal(t, 50.0, first.ArrivalDelayed15)
	assert.Equal(t, 12.5, first.ArrivalDelayMinutes)
	assert.Equal(t, 0.25, first.DelayRate)
	assert.Equal(t, domain.MonthStart(2015, 1), first.Date)

	// The file's season column disagrees; season always comes from month.
	assert.Equal(t, domain.SeasonWinter, first.Season)

	third := records[2]
	assert.Equal(t, 0.0, third.DelayRate)
	assert.Equal(t, 0.0, third.ArrivalDelayMinutes)
	assert.True(t, third.DelayMinutesMissing)
	assert.False(t, first.DelayMinutesMissing)
}

func TestLoad_CauseYearRestriction(t *testing.T) {
	path := writeCSV(t, causeCSV)
	src := domain.Source{Kind: domain.DatasetCause, Path: path, Years: &domain.Range{Lo: 2014, Hi: 2019}}

	records, err := newTestLoader().Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2014, records[0].Year)
	assert.Equal(t, "Newark Liberty International", records[0].AirportName)
	assert.Equal(t, domain.CauseCounts{Carrier: 10.5, Weather: 1.5, NAS: 8, Security: 0, LateAircraft: 10}, records[0].Causes)
	assert.Equal(t, domain.CauseCounts{}, records[1].Causes)
}

func TestLoad_Airport(t *testing.T) {
	path := writeCSV(t, airportCSV)

	records, err := newTestLoader().Load(context.Background(), domain.Source{Kind: domain.DatasetAirport, Path: path})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Seattle, WA (SEA)", records[0].DisplayLabel())
	assert.Equal(t, -3.5, records[0].ArrivalDelayMinutes)
	assert.Equal(t, 1.0, records[0].ArrivalDelayed15)
}

func TestDecode_BlankDelayIsLeftOutOfAverages(t *testing.T) {
	data := []byte(`year,month,carrier_name,airport_code,city,arr_del15,arr_delay
2018,5,Alaska Airlines Inc.,SEA,"Seattle, WA",1,10
2018,5,Alaska Airlines Inc.,PDX,"Portland, OR",0,
2018,6,Alaska Airlines Inc.,SEA,"Seattle, WA",0,20
`)
	schema, err := SchemaFor(domain.DatasetAirport)
	require.NoError(t, err)

	records, err := Decode(data, schema)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[1].DelayMinutesMissing)

	v := domain.ComputeAirportView(records, domain.AirportFilter{})
	assert.Equal(t, domain.KPI{Value: 15, Available: true}, v.KPIs.AvgDelayMinutes)
	assert.Equal(t, []domain.Bucket{{Key: "SEA", Count: 2, Value: 15}}, v.MedianDelay)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), domain.Source{Kind: domain.DatasetTrend, Path: filepath.Join(t.TempDir(), "nope.csv")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_EmptyFile(t *testing.T) {
	for name, content := range map[string]string{
		"no bytes":    "",
		"whitespace":  "\n\n  \n",
		"header only": "year,month,carrier_name,airport_code,arr_flights,arr_del15,avg_delay_min\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeCSV(t, content)
			_, err := newTestLoader().Load(context.Background(), domain.Source{Kind: domain.DatasetTrend, Path: path})
			require.ErrorIs(t, err, ErrEmptySource)
		})
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeCSV(t, "year,month,carrier_name,airport_code,arr_flights,arr_del15\n2015,1,X,SEA,1,0\n")

	_, err := newTestLoader().Load(context.Background(), domain.Source{Kind: domain.DatasetTrend, Path: path})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "avg_delay_min", schemaErr.Column)
	assert.Equal(t, domain.DatasetTrend, schemaErr.Dataset)
}

func TestLoad_InvalidRows(t *testing.T) {
	const header = "year,month,carrier_name,airport_code,arr_flights,arr_del15,avg_delay_min\n"
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"month out of range", "2015,13,X,SEA,10,1,2\n", "month"},
		{"missing year", ",1,X,SEA,10,1,2\n", "year"},
		{"fractional year", "2015.5,1,X,SEA,10,1,2\n", "year"},
		{"negative flights", "2015,1,X,SEA,-1,0,2\n", "arr_flights"},
		{"delayed exceeds flights", "2015,1,X,SEA,10,11,2\n", "arr_del15"},
		{"garbage delay", "2015,1,X,SEA,10,1,soon\n", "avg_delay_min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, header+"2015,1,X,SEA,10,1,2\n"+tt.row)

			records, err := newTestLoader().Load(context.Background(), domain.Source{Kind: domain.DatasetTrend, Path: path})

			assert.Nil(t, records)
			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tt.column, rowErr.Column)
			assert.Equal(t, 2, rowErr.Row)
		})
	}
}

func TestLoad_UnknownKind(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), domain.Source{Kind: "bogus", Path: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestLoad_CancelledContext(t *testing.T) {
	path := writeCSV(t, trendCSV)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader().Load(ctx, domain.Source{Kind: domain.DatasetTrend, Path: path})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSchemaValidate(t *testing.T) {
	s, err := SchemaFor(domain.DatasetAirport)
	require.NoError(t, err)

	require.NoError(t, s.Validate([]string{"year", "month", "carrier_name", "airport_code", "city", "arr_del15", "arr_delay", "extra"}))

	err = s.Validate([]string{"year", "month"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "carrier_name", schemaErr.Column)
	assert.Contains(t, err.Error(), `missing required column "carrier_name"`)
}
