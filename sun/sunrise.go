package sun

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Solar elevations, in degrees, that bound each twilight phase.
// Sunrise and sunset use the apparent upper limb of the disk.
const (
	horizonElevation      = -0.833
	civilElevation        = -6.0
	nauticalElevation     = -12.0
	astronomicalElevation = -18.0
)

var elevationPhases = []struct {
	elevation float64
	evening   Phase // phase entered when the sun sinks below the elevation
	morning   Phase // phase entered when the sun climbs above it
}{
	{horizonElevation, PhaseCivil, PhaseDay},
	{civilElevation, PhaseNautical, PhaseCivil},
	{nauticalElevation, PhaseAstronomical, PhaseNautical},
	{astronomicalElevation, PhaseDark, PhaseAstronomical},
}

// SunriseEphemeris finds transitions with github.com/nathan-osman/go-sunrise
type SunriseEphemeris struct{}

// NewSunriseEphemeris creates a go-sunrise backed ephemeris
func NewSunriseEphemeris() *SunriseEphemeris {
	return &SunriseEphemeris{}
}

// Transitions implements Ephemeris
func (SunriseEphemeris) Transitions(loc Location, from, to time.Time) ([]Transition, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	var candidates []Transition
	for _, date := range searchDates(from, to) {
		for _, ep := range elevationPhases {
			morning, evening := sunrise.TimeOfElevation(
				loc.Latitude, loc.Longitude, ep.elevation,
				date.Year(), date.Month(), date.Day())
			candidates = append(candidates,
				Transition{Time: morning, Phase: ep.morning},
				Transition{Time: evening, Phase: ep.evening},
			)
		}
	}

	return collectWindow(candidates, from, to), nil
}
