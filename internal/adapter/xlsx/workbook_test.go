package xlsx

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

func TestWrite_RoundTrip(t *testing.T) {
	records := []domain.FlightDelayRecord{
		domain.Derive(domain.FlightDelayRecord{
			Year: 2019, Month: 1, AirportCode: "SEA", AirportName: "Seattle/Tacoma International",
			City: "Seattle, WA", CarrierName: "Alaska Airlines Inc.",
			ArrivalFlights: 100, ArrivalDelayed15: 25, ArrivalDelayMinutes: 12,
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	if diff := cmp.Diff(Columns, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	want := []string{"2019", "1", "SEA", "Seattle/Tacoma International", "Seattle, WA", "Alaska Airlines Inc.", "100", "25", "12", "0.25", "Winter"}
	if diff := cmp.Diff(want, rows[1]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_MissingDelayIsBlank(t *testing.T) {
	records := []domain.FlightDelayRecord{
		domain.Derive(domain.FlightDelayRecord{
			Year: 2019, Month: 2, AirportCode: "PDX", City: "Portland, OR", CarrierName: "Alaska Airlines Inc.",
			DelayMinutesMissing: true,
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SheetName, "I2")
	require.NoError(t, err)
	assert.Empty(t, value)

	season, err := f.GetCellValue(SheetName, "K2")
	require.NoError(t, err)
	assert.Equal(t, "Winter", season)
}

func TestWrite_EmptyViewHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}
