package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func airportRecord(name string, flights, delayed float64) FlightDelayRecord {
	return newRecord(withAirport("", "", name), withArrivals(flights, delayed))
}

func TestRankAirports_ThresholdAndOrder(t *testing.T) {
	records := []FlightDelayRecord{
		airportRecord("Newark Liberty International", 60000, 15000),
		airportRecord("Newark Liberty International", 60000, 15000),
		airportRecord("Small Regional", 99999, 90000),
		airportRecord("Seattle/Tacoma International", 150000, 15000),
		airportRecord("Chicago O'Hare International", 200000, 40000),
	}

	got := RankAirports(records, DefaultRankMinFlights, DefaultRankLimit)

	require.Len(t, got, 3)
	assert.Equal(t, "Newark Liberty International", got[0].AirportName)
	assert.Equal(t, 120000.0, got[0].TotalFlights)
	assert.Equal(t, 30000.0, got[0].TotalDelays)
	assert.InDelta(t, 0.25, got[0].DelayPct, 1e-9)
	assert.Equal(t, "Chicago O'Hare International", got[1].AirportName)
	assert.Equal(t, "Seattle/Tacoma International", got[2].AirportName)
}

func TestRankAirports_LimitAndInvariants(t *testing.T) {
	var records []FlightDelayRecord
	for i := 0; i < 25; i++ {
		flights := float64(50000 + i*10000)
		records = append(records, airportRecord(fmt.Sprintf("Airport %02d", i), flights, float64(i*1000)))
	}

	got := RankAirports(records, DefaultRankMinFlights, DefaultRankLimit)

	require.Len(t, got, DefaultRankLimit)
	for i, r := range got {
		assert.GreaterOrEqual(t, r.TotalFlights, float64(DefaultRankMinFlights))
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].DelayPct, r.DelayPct)
		}
	}
}

func TestRankAirports_TiesKeepNameOrder(t *testing.T) {
	records := []FlightDelayRecord{
		airportRecord("Charlie", 100000, 10000),
		airportRecord("Alpha", 100000, 10000),
		airportRecord("Bravo", 100000, 10000),
	}

	got := RankAirports(records, DefaultRankMinFlights, DefaultRankLimit)

	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, AirportNames(got))
}

func TestRankAirports_Empty(t *testing.T) {
	got := RankAirports(nil, DefaultRankMinFlights, DefaultRankLimit)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
