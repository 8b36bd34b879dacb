package timephrase

import (
	"fmt"
	"math"
	"time"
)

// maxMonths and maxSeconds bound each part of a phrase to 100000 years so
// the result stays inside the range time.Time can represent.
const (
	maxMonths  = 12 * 100000
	maxSeconds = 100000 * 366 * 24 * 60 * 60
)

// maxStep is the largest span a single time.Duration can hold, in seconds.
const maxStep = int64(math.MaxInt64 / time.Second)

// Resolver turns phrases into instants.
type Resolver struct {
	// CalendarFirst subtracts months and years before fixed-duration units.
	// The default subtracts seconds through weeks first.
	CalendarFirst bool
}

// Resolve parses s and returns the instant s describes before now,
// using the default Resolver.
func Resolve(s string, now time.Time) (time.Time, error) {
	return Resolver{}.Resolve(s, now)
}

// Resolve parses s and returns the instant s describes before now.
func (r Resolver) Resolve(s string, now time.Time) (time.Time, error) {
	phrase, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return r.Apply(phrase, now)
}

// Apply subtracts an already parsed phrase from now. The result keeps the
// location of now.
func (r Resolver) Apply(p Phrase, now time.Time) (time.Time, error) {
	fixed, months, err := p.totals()
	if err != nil {
		return time.Time{}, err
	}

	if r.CalendarFirst {
		return subtractSeconds(subtractMonths(now, months), fixed), nil
	}
	return subtractMonths(subtractSeconds(now, fixed), months), nil
}

// subtractSeconds moves t back by secs seconds. Spans longer than a
// time.Duration are applied in steps.
func subtractSeconds(t time.Time, secs int64) time.Time {
	for secs > 0 {
		step := min(secs, maxStep)
		t = t.Add(-time.Duration(step) * time.Second)
		secs -= step
	}
	return t
}

// totals sums the fixed part in seconds and the calendar part in months.
func (p Phrase) totals() (int64, int, error) {
	var fixed int64
	var months int64

	for _, pair := range p {
		if pair.Unit.Calendar() {
			per := int64(pair.Unit.months())
			if pair.Quantity > (maxMonths-months)/per {
				return 0, 0, &ParseError{Phrase: p.String(), Reason: fmt.Sprintf("%s is out of range", pair)}
			}
			months += pair.Quantity * per
			continue
		}

		per := int64(pair.Unit.Duration() / time.Second)
		if pair.Quantity > (maxSeconds-fixed)/per {
			return 0, 0, &ParseError{Phrase: p.String(), Reason: fmt.Sprintf("%s is out of range", pair)}
		}
		fixed += pair.Quantity * per
	}

	return fixed, int(months), nil
}
