package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	trendCSV = `year,month,carrier_name,airport_code,arr_flights,arr_del15,avg_delay_min
2015,1,Alaska Airlines Inc.,SEA,200,50,12
2015,2,Alaska Airlines Inc.,SEA,100,10,6
2015,7,Delta Air Lines Inc.,PDX,300,30,8
`
	causeCSV = `year,month,carrier_name,airport_name_cleansed,arr_flights,arr_del15,carrier_ct,weather_ct,nas_ct,security_ct,late_aircraft_ct
2015,1,Alaska Airlines Inc.,Seattle/Tacoma International,2000,500,100,100,100,0,200
2016,7,Delta Air Lines Inc.,Portland International,1000,100,20,20,20,0,40
2012,7,Delta Air Lines Inc.,Newark Liberty International,5000,5000,1000,1000,1000,1000,1000
`
	airportCSV = `year,month,carrier_name,airport_code,city,arr_del15,arr_delay
2018,5,Alaska Airlines Inc.,SEA,"Seattle, WA",1,-3.5
`
)

// fixtureDir writes the three datasets and runs the test from that directory.
func fixtureDir(t *testing.T, trend string) []string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	files := map[string]string{"trend.csv": trend, "cause.csv": causeCSV, "airport.csv": airportCSV}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return []string{"--trend", "trend.csv", "--cause", "cause.csv", "--airport", "airport.csv"}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestValidate_Passes(t *testing.T) {
	paths := fixtureDir(t, trendCSV)

	out, err := run(t, append([]string{"validate", "--year-from", "2014", "--year-to", "2019"}, paths...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "trend: load")
	assert.Contains(t, out, "cause: airport ranking")
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "FAIL")
}

func TestValidate_ReportsInvalidRows(t *testing.T) {
	paths := fixtureDir(t, `year,month,carrier_name,airport_code,arr_flights,arr_del15,avg_delay_min
2015,13,Alaska Airlines Inc.,SEA,200,50,12
`)

	out, err := run(t, append([]string{"validate"}, paths...)...)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "month")
}

func TestRank(t *testing.T) {
	paths := fixtureDir(t, trendCSV)

	out, err := run(t, append([]string{"rank", "--min-flights", "500"}, paths...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Seattle/Tacoma International")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "Portland International")
	// Newark falls outside the default 2014-2019 window.
	assert.NotContains(t, out, "Newark")
	assert.Contains(t, strings.ToLower(out), "2 airports")
}

func TestSummary_GroupsByCarrier(t *testing.T) {
	paths := fixtureDir(t, trendCSV)

	out, err := run(t, append([]string{"summary",
		"--carrier", "Alaska Airlines Inc.", "--carrier", "Delta Air Lines Inc."}, paths...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Rows: 3")
	assert.Contains(t, out, "2015-07")
	// go-pretty upper-cases header cells.
	assert.Contains(t, strings.ToLower(out), "carrier_name")
	assert.Contains(t, strings.ToLower(out), "mean(delay_minutes)")
}

func TestSummary_EmptyFilter(t *testing.T) {
	paths := fixtureDir(t, trendCSV)

	out, err := run(t, append([]string{"summary", "--season", "Fall"}, paths...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No data for the current filters")
}

func TestSummary_RejectsUnknownInputs(t *testing.T) {
	paths := fixtureDir(t, trendCSV)

	_, err := run(t, append([]string{"summary", "--season", "Monsoon"}, paths...)...)
	require.Error(t, err)

	_, err = run(t, append([]string{"summary", "--metric", "bogus"}, paths...)...)
	require.Error(t, err)

	_, err = run(t, append([]string{"summary", "--reducer", "max"}, paths...)...)
	require.Error(t, err)
}

func TestMissingDatasetFails(t *testing.T) {
	fixtureDir(t, trendCSV)

	_, err := run(t, "summary", "--trend", "missing.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
