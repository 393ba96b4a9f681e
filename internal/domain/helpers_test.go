package domain

const (
	testCarrierAlaska = "Alaska Airlines Inc."
	testCarrierDelta  = "Delta Air Lines Inc."
	testCarrierUnited = "United Air Lines Inc."
	testAirportSEA    = "SEA"
	testAirportPDX    = "PDX"
	testAirportEWR    = "EWR"
)

type recordOpt func(*FlightDelayRecord)

func withCarrier(c string) recordOpt { return func(r *FlightDelayRecord) { r.CarrierName = c } }

func withAirport(code, city, name string) recordOpt {
	return func(r *FlightDelayRecord) {
		r.AirportCode = code
		r.City = city
		r.AirportName = name
	}
}

func withPeriod(year, month int) recordOpt {
	return func(r *FlightDelayRecord) {
		r.Year = year
		r.Month = month
	}
}

func withArrivals(flights, delayed float64) recordOpt {
	return func(r *FlightDelayRecord) {
		r.ArrivalFlights = flights
		r.ArrivalDelayed15 = delayed
	}
}

func withDelay(minutes float64) recordOpt {
	return func(r *FlightDelayRecord) { r.ArrivalDelayMinutes = minutes }
}

func withoutDelay() recordOpt {
	return func(r *FlightDelayRecord) {
		r.ArrivalDelayMinutes = 0
		r.DelayMinutesMissing = true
	}
}

func withCauses(c CauseCounts) recordOpt { return func(r *FlightDelayRecord) { r.Causes = c } }

// newRecord builds a derived record for SEA / Alaska in January 2015 with the
// given overrides applied.
func newRecord(opts ...recordOpt) FlightDelayRecord {
	r := FlightDelayRecord{
		Year:             2015,
		Month:            1,
		AirportCode:      testAirportSEA,
		AirportName:      "Seattle/Tacoma International",
		City:             "Seattle, WA",
		CarrierName:      testCarrierAlaska,
		ArrivalFlights:   100,
		ArrivalDelayed15: 10,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return Derive(r)
}

// sampleRecords is a small mixed dataset spanning two carriers, three
// airports and all four seasons.
func sampleRecords() []FlightDelayRecord {
	return []FlightDelayRecord{
		newRecord(withPeriod(2015, 1), withArrivals(200, 50), withDelay(12)),
		newRecord(withPeriod(2015, 2), withArrivals(100, 10), withDelay(6)),
		newRecord(withPeriod(2015, 4), withCarrier(testCarrierDelta), withArrivals(300, 30), withDelay(8)),
		newRecord(withPeriod(2015, 7), withAirport(testAirportPDX, "Portland, OR", "Portland International"), withArrivals(50, 5), withDelay(4)),
		newRecord(withPeriod(2016, 10), withAirport(testAirportEWR, "Newark, NJ", "Newark Liberty International"),
			withCarrier(testCarrierUnited), withArrivals(400, 120), withDelay(20)),
		newRecord(withPeriod(2016, 12), withCarrier(testCarrierDelta), withArrivals(0, 0), withDelay(0)),
	}
}
