package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Season is a meteorological quarter of the year.
type Season string

const (
	SeasonNone   Season = ""
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// OptionAll is the picker value meaning "no restriction".
const OptionAll = "All"

// ErrUnknownSeason is returned by ParseSeason for unrecognized names.
var ErrUnknownSeason = errors.New("unknown season")

// Seasons lists the seasons in calendar order, starting with winter.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

var seasonMonths = map[Season][]int{
	SeasonWinter: {12, 1, 2},
	SeasonSpring: {3, 4, 5},
	SeasonSummer: {6, 7, 8},
	SeasonFall:   {9, 10, 11},
}

// SeasonOf buckets a month (1-12) into its season.
// Months outside 1-12 map to SeasonNone.
func SeasonOf(month int) Season {
	switch month {
	case 12, 1, 2:
		return SeasonWinter
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	case 9, 10, 11:
		return SeasonFall
	default:
		return SeasonNone
	}
}

// Months returns the months belonging to s, or nil for SeasonNone.
func (s Season) Months() []int {
	return seasonMonths[s]
}

// ParseSeason maps a picker value to a Season. Empty and "All" map to
// SeasonNone. Matching is case-insensitive and accepts long labels such as
// "Winter (Dec-Feb)".
func ParseSeason(value string) (Season, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, OptionAll) {
		return SeasonNone, nil
	}
	if i := strings.IndexByte(v, '('); i > 0 {
		v = strings.TrimSpace(v[:i])
	}
	for _, s := range Seasons {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	if strings.EqualFold(v, "autumn") {
		return SeasonFall, nil
	}
	return SeasonNone, fmt.Errorf("%w: %q", ErrUnknownSeason, value)
}
