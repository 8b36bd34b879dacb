package timephrase

import (
	"strings"
	"time"
)

// Unit is one of the canonical time units a phrase can reference.
type Unit int

// Canonical units, ordered from smallest to largest.
const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{
	Second: "second",
	Minute: "minute",
	Hour:   "hour",
	Day:    "day",
	Week:   "week",
	Month:  "month",
	Year:   "year",
}

// unitWords maps every accepted spelling to its canonical unit.
// "m" is minutes, matching git's own shorthand; months need "mo".
var unitWords = map[string]Unit{
	"s": Second, "sec": Second, "secs": Second, "second": Second, "seconds": Second,
	"m": Minute, "min": Minute, "mins": Minute, "minute": Minute, "minutes": Minute,
	"h": Hour, "hr": Hour, "hrs": Hour, "hour": Hour, "hours": Hour,
	"d": Day, "day": Day, "days": Day,
	"w": Week, "wk": Week, "wks": Week, "week": Week, "weeks": Week,
	"mo": Month, "mon": Month, "mos": Month, "month": Month, "months": Month,
	"y": Year, "yr": Year, "yrs": Year, "year": Year, "years": Year,
}

// String returns the singular unit name.
func (u Unit) String() string {
	if u < Second || u > Year {
		return "unknown"
	}
	return unitNames[u]
}

// Calendar reports whether the unit is subtracted on the calendar
// rather than as a fixed duration.
func (u Unit) Calendar() bool {
	return u == Month || u == Year
}

// Duration returns the fixed length of the unit. Calendar units return 0.
func (u Unit) Duration() time.Duration {
	switch u {
	case Second:
		return time.Second
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	case Week:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

// months returns the number of calendar months in one unit.
func (u Unit) months() int {
	switch u {
	case Month:
		return 1
	case Year:
		return 12
	default:
		return 0
	}
}

// LookupUnit normalizes a unit word, case-insensitively.
func LookupUnit(word string) (Unit, bool) {
	u, ok := unitWords[strings.ToLower(word)]
	return u, ok
}
