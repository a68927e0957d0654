package sun

import (
	"sort"
	"time"
)

// Ephemeris finds the dark/twilight/day transitions at a location.
type Ephemeris interface {
	// Transitions returns every transition in [from, to), sorted by time.
	Transitions(loc Location, from, to time.Time) ([]Transition, error)
}

// EphemerisFunc adapts a plain function to the Ephemeris interface
type EphemerisFunc func(loc Location, from, to time.Time) ([]Transition, error)

// Transitions calls f(loc, from, to)
func (f EphemerisFunc) Transitions(loc Location, from, to time.Time) ([]Transition, error) {
	return f(loc, from, to)
}

// collectWindow keeps the candidates inside [from, to) and sorts them.
// Crossings that never happen come back from the libraries as zero or
// far-off instants and are dropped here.
func collectWindow(candidates []Transition, from, to time.Time) []Transition {
	out := make([]Transition, 0, TransitionsPerNight)
	for _, c := range candidates {
		if c.Time.IsZero() || c.Time.Before(from) || !c.Time.Before(to) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// searchDates returns the calendar dates whose events may fall inside [from, to)
func searchDates(from, to time.Time) []time.Time {
	start := from.UTC().AddDate(0, 0, -1)
	start = time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, time.UTC)

	var dates []time.Time
	for d := start; !d.After(to.UTC().AddDate(0, 0, 1)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
