package http

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

var validate = validator.New()

// trendQuery holds query parameters for the trend view.
type trendQuery struct {
	Season   string
	Carriers []string `validate:"max=100,dive,required"`
	Airports []string `validate:"max=100,dive,required,alphanum,max=5"`
}

func parseTrendQuery(q url.Values, prefix string) (domain.TrendFilter, error) {
	t := trendQuery{
		Season:   q.Get(prefix + "season"),
		Carriers: q[prefix+"carrier"],
		Airports: q[prefix+"airport"],
	}
	if err := validate.Struct(t); err != nil {
		return domain.TrendFilter{}, err
	}
	season, err := domain.ParseSeason(t.Season)
	if err != nil {
		return domain.TrendFilter{}, err
	}
	return domain.TrendFilter{Season: season, Carriers: t.Carriers, Airports: t.Airports}, nil
}

// causeQuery holds query parameters for the cause view.
type causeQuery struct {
	Airport string `validate:"max=200"`
	Carrier string `validate:"max=200"`
	Season  string
}

func parseCauseQuery(q url.Values, prefix string) (domain.CauseFilter, error) {
	c := causeQuery{
		Airport: q.Get(prefix + "airport"),
		Carrier: q.Get(prefix + "carrier"),
		Season:  q.Get(prefix + "season"),
	}
	if err := validate.Struct(c); err != nil {
		return domain.CauseFilter{}, err
	}
	season, err := domain.ParseSeason(c.Season)
	if err != nil {
		return domain.CauseFilter{}, err
	}
	carrier := c.Carrier
	if carrier == domain.OptionAll {
		carrier = ""
	}
	return domain.CauseFilter{Airport: c.Airport, Carrier: carrier, Season: season}, nil
}

// airportQuery holds query parameters for the airport view. Unset bounds
// default to an unrestricted range.
type airportQuery struct {
	Carrier   string   `validate:"max=200"`
	Airports  []string `validate:"max=100,dive,required"`
	YearFrom  int      `validate:"gte=0,lte=9999"`
	YearTo    int      `validate:"gte=0,lte=9999,gtefield=YearFrom"`
	MonthFrom int      `validate:"min=1,max=12"`
	MonthTo   int      `validate:"min=1,max=12,gtefield=MonthFrom"`
}

func parseAirportQuery(q url.Values, prefix string) (domain.AirportFilter, error) {
	a := airportQuery{
		Carrier:   q.Get(prefix + "carrier"),
		Airports:  q[prefix+"airport"],
		YearFrom:  0,
		YearTo:    9999,
		MonthFrom: 1,
		MonthTo:   12,
	}
	years, err := intParams(q, prefix, map[string]*int{"year_from": &a.YearFrom, "year_to": &a.YearTo})
	if err != nil {
		return domain.AirportFilter{}, err
	}
	months, err := intParams(q, prefix, map[string]*int{"month_from": &a.MonthFrom, "month_to": &a.MonthTo})
	if err != nil {
		return domain.AirportFilter{}, err
	}
	if err := validate.Struct(a); err != nil {
		return domain.AirportFilter{}, err
	}

	f := domain.AirportFilter{Carrier: a.Carrier, Airports: a.Airports}
	if years {
		f.Years = &domain.Range{Lo: a.YearFrom, Hi: a.YearTo}
	}
	if months {
		f.Months = &domain.Range{Lo: a.MonthFrom, Hi: a.MonthTo}
	}
	return f, nil
}

// intParams parses the named integer parameters that are present and reports
// whether any of them was.
func intParams(q url.Values, prefix string, dst map[string]*int) (bool, error) {
	found := false
	for name, p := range dst {
		s := q.Get(prefix + name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return false, fmt.Errorf("invalid %s%s: %q is not an integer", prefix, name, s)
		}
		*p = n
		found = true
	}
	return found, nil
}
