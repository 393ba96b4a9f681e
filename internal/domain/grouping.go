package domain

// GroupKey is the categorical dimension used to split a chart into series.
type GroupKey string

const (
	GroupNone    GroupKey = ""
	GroupCarrier GroupKey = "carrier_name"
	GroupAirport GroupKey = "airport_code"
)

// SelectGroupKey picks at most one grouping dimension from the carrier and
// airport selections. Carrier wins whenever more than one distinct carrier is
// selected; airport is used only when carriers did not qualify.
func SelectGroupKey(carriers, airports []string) GroupKey {
	switch {
	case countDistinct(carriers) > 1:
		return GroupCarrier
	case countDistinct(airports) > 1:
		return GroupAirport
	default:
		return GroupNone
	}
}

// Value returns the record's value for the key, or "" for GroupNone.
func (k GroupKey) Value(r *FlightDelayRecord) string {
	switch k {
	case GroupCarrier:
		return r.CarrierName
	case GroupAirport:
		return r.AirportCode
	default:
		return ""
	}
}

func countDistinct(values []string) int {
	return len(toSet(values))
}
