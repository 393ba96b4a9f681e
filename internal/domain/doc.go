// Package domain models Bureau of Transportation Statistics (BTS) airline
// on-time performance data and the filter-and-aggregate pipeline that turns
// it into dashboard views.
//
// # Data Source
//
// Each row of the BTS "Airline On-Time Statistics and Delay Causes" export is
// one (airport, carrier, year, month) observation period. The columns used
// here are:
//
//	year, month                 observation period
//	airport_code                IATA code, e.g. "SEA"
//	airport_name_cleansed       airport name with the "City, ST: " prefix removed
//	city                        display city, e.g. "Seattle, WA"
//	carrier_name                marketing carrier, e.g. "Alaska Airlines Inc."
//	arr_flights                 scheduled arrivals
//	arr_del15                   arrivals delayed 15 minutes or more
//	arr_delay / avg_delay_min   delay magnitude in minutes
//	carrier_ct .. late_aircraft_ct
//	                            delayed arrivals attributed to each cause
//
// Cause counts are fractional: BTS splits a single late arrival across causes
// in proportion to the minutes each cause contributed.
//
// # Derived Fields
//
// Derived once at load by [Derive] and never mutated afterwards:
//
//	Date       first of the month (UTC); a bucket key, not an event time
//	DelayRate  arr_del15 / arr_flights, 0 when there were no arrivals
//	Season     meteorological season of the month:
//	             Winter = Dec, Jan, Feb
//	             Spring = Mar, Apr, May
//	             Summer = Jun, Jul, Aug
//	             Fall   = Sep, Oct, Nov
//
// A season column present in an input file is ignored. Season is always
// derived from month so every dataset buckets the same way.
//
// # Views
//
// Three views share the pipeline. Each picks its own airport matching policy
// (see [AirportMatch]):
//
//	trend    season + carriers + airport codes; mean delay and delay rate per month
//	cause    airport name + carrier + season; share of arrivals per delay cause
//	airport  carrier + airport labels + year/month range; median delay per airport
//
// All view functions are pure: (records, filter) -> result. An empty filter
// result is a valid state and produces empty series and "N/A" metrics.
package domain
