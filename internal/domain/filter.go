package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// AirportMatch selects how the airport filter compares a record against the
// selected airports. Each view uses a fixed policy.
type AirportMatch int

const (
	// MatchCode compares the IATA airport code exactly (trend view).
	MatchCode AirportMatch = iota
	// MatchNameContains checks whether the cleansed airport name contains the
	// selection, ignoring case (cause view).
	MatchNameContains
	// MatchDisplayLabel compares the "City (CODE)" label exactly (airport view).
	MatchDisplayLabel
	// MatchName compares the cleansed airport name exactly (cause view carrier
	// options).
	MatchName
)

func (m AirportMatch) String() string {
	switch m {
	case MatchCode:
		return "code"
	case MatchNameContains:
		return "name_contains"
	case MatchDisplayLabel:
		return "display_label"
	case MatchName:
		return "name"
	default:
		return fmt.Sprintf("AirportMatch(%d)", int(m))
	}
}

// Range is an inclusive integer interval.
type Range struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Contains reports whether lo <= v <= hi.
func (r Range) Contains(v int) bool {
	return v >= r.Lo && v <= r.Hi
}

// FilterSpec is the conjunction of the active filter dimensions.
// Zero values mean "no restriction": an empty Carriers set matches every
// carrier, it does not match nothing.
type FilterSpec struct {
	Season       Season
	Carriers     []string
	Airports     []string
	AirportMatch AirportMatch
	Months       *Range
	Years        *Range
}

// Predicate reports whether a record passes one filter dimension.
type Predicate func(r *FlightDelayRecord) bool

// Predicates returns the active predicates of the spec, in evaluation order.
func (f FilterSpec) Predicates() []Predicate {
	var preds []Predicate
	if f.Season != SeasonNone {
		preds = append(preds, SeasonPredicate(f.Season))
	}
	if len(f.Carriers) > 0 {
		preds = append(preds, CarrierPredicate(f.Carriers))
	}
	if len(f.Airports) > 0 {
		preds = append(preds, AirportPredicate(f.AirportMatch, f.Airports))
	}
	if f.Years != nil {
		preds = append(preds, YearRangePredicate(*f.Years))
	}
	if f.Months != nil {
		preds = append(preds, MonthRangePredicate(*f.Months))
	}
	return preds
}

// Apply returns the records that satisfy every active predicate. The input is
// never modified; the result is a fresh slice that may be empty.
func (f FilterSpec) Apply(records []FlightDelayRecord) []FlightDelayRecord {
	preds := f.Predicates()
	out := make([]FlightDelayRecord, 0, len(records))
	for i := range records {
		if matchAll(&records[i], preds) {
			out = append(out, records[i])
		}
	}
	return out
}

func matchAll(r *FlightDelayRecord, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// SeasonPredicate matches records bucketed into s.
func SeasonPredicate(s Season) Predicate {
	return func(r *FlightDelayRecord) bool {
		return r.Season == s
	}
}

// CarrierPredicate matches records whose carrier is in the set.
func CarrierPredicate(carriers []string) Predicate {
	set := toSet(carriers)
	return func(r *FlightDelayRecord) bool {
		_, ok := set[r.CarrierName]
		return ok
	}
}

// AirportPredicate matches records against the selected airports using the
// given policy.
func AirportPredicate(match AirportMatch, airports []string) Predicate {
	switch match {
	case MatchNameContains:
		fold := cases.Fold()
		needles := make([]string, 0, len(airports))
		for _, a := range airports {
			needles = append(needles, fold.String(a))
		}
		return func(r *FlightDelayRecord) bool {
			name := fold.String(r.AirportName)
			for _, n := range needles {
				if strings.Contains(name, n) {
					return true
				}
			}
			return false
		}
	case MatchDisplayLabel:
		set := toSet(airports)
		return func(r *FlightDelayRecord) bool {
			_, ok := set[r.DisplayLabel()]
			return ok
		}
	case MatchName:
		set := toSet(airports)
		return func(r *FlightDelayRecord) bool {
			_, ok := set[r.AirportName]
			return ok
		}
	default:
		set := toSet(airports)
		return func(r *FlightDelayRecord) bool {
			_, ok := set[r.AirportCode]
			return ok
		}
	}
}

// MonthRangePredicate matches records whose month is within the range.
func MonthRangePredicate(months Range) Predicate {
	return func(r *FlightDelayRecord) bool {
		return months.Contains(r.Month)
	}
}

// YearRangePredicate matches records whose year is within the range.
func YearRangePredicate(years Range) Predicate {
	return func(r *FlightDelayRecord) bool {
		return years.Contains(r.Year)
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
