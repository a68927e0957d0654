package sun

import (
	"time"

	"github.com/sixdouglas/suncalc"
)

// suncalc names for the evening and morning crossings, with the phase each one enters
var suncalcEvents = []struct {
	name  string
	phase Phase
}{
	{"sunset", PhaseCivil},
	{"dusk", PhaseNautical},
	{"nauticalDusk", PhaseAstronomical},
	{"night", PhaseDark},
	{"nightEnd", PhaseAstronomical},
	{"nauticalDawn", PhaseNautical},
	{"dawn", PhaseCivil},
	{"sunrise", PhaseDay},
}

// SuncalcEphemeris finds transitions with github.com/sixdouglas/suncalc
type SuncalcEphemeris struct{}

// NewSuncalcEphemeris creates a suncalc-backed ephemeris
func NewSuncalcEphemeris() *SuncalcEphemeris {
	return &SuncalcEphemeris{}
}

// Transitions implements Ephemeris
func (SuncalcEphemeris) Transitions(loc Location, from, to time.Time) ([]Transition, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	var candidates []Transition
	for _, date := range searchDates(from, to) {
		times := suncalc.GetTimes(date, loc.Latitude, loc.Longitude)
		for _, ev := range suncalcEvents {
			dt, ok := times[suncalc.DayTimeName(ev.name)]
			if !ok {
				continue
			}
			candidates = append(candidates, Transition{Time: dt.Value, Phase: ev.phase})
		}
	}

	return collectWindow(candidates, from, to), nil
}
