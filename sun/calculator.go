package sun

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"
)

// EventTable holds the instants of one night, keyed by start and end event
type EventTable struct {
	Location    Location
	Zone        *time.Location
	From        time.Time // local noon on the requested day
	To          time.Time // local noon on the following day
	Transitions []Transition

	starts [numStartEvents]time.Time
	ends   [numEndEvents]time.Time
}

// NamedTime is one entry of an ordered event mapping
type NamedTime struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// SunTimes lists the transitions of a night under their descriptive names
type SunTimes struct {
	Sunset                time.Time `json:"sunset"`
	EndCivilTwilight      time.Time `json:"end_civil_twilight"`
	EndNauticalTwilight   time.Time `json:"end_nautical_twilight"`
	EndAstroTwilight      time.Time `json:"end_astro_twilight"`
	StartAstroTwilight    time.Time `json:"start_astro_twilight"`
	StartNauticalTwilight time.Time `json:"start_nautical_twilight"`
	StartCivilTwilight    time.Time `json:"start_civil_twilight"`
	Sunrise               time.Time `json:"sunrise"`
}

// Start returns the instant of a start event
func (t *EventTable) Start(e StartEvent) (time.Time, error) {
	if !e.Valid() {
		return time.Time{}, &UnknownEventError{Kind: "start", Name: strconv.Itoa(int(e))}
	}
	return t.starts[e], nil
}

// End returns the instant of an end event
func (t *EventTable) End(e EndEvent) (time.Time, error) {
	if !e.Valid() {
		return time.Time{}, &UnknownEventError{Kind: "end", Name: strconv.Itoa(int(e))}
	}
	return t.ends[e], nil
}

// StartTimes returns the start mapping in chronological order
func (t *EventTable) StartTimes() []NamedTime {
	out := make([]NamedTime, 0, numStartEvents)
	for _, e := range StartEvents() {
		out = append(out, NamedTime{Name: e.String(), Time: t.starts[e]})
	}
	return out
}

// EndTimes returns the end mapping in chronological order
func (t *EventTable) EndTimes() []NamedTime {
	out := make([]NamedTime, 0, numEndEvents)
	for _, e := range EndEvents() {
		out = append(out, NamedTime{Name: e.String(), Time: t.ends[e]})
	}
	return out
}

// SunTimes returns the night's transitions by descriptive name
func (t *EventTable) SunTimes() SunTimes {
	return SunTimes{
		Sunset:                t.starts[StartSunset],
		EndCivilTwilight:      t.starts[StartCivilTwilight],
		EndNauticalTwilight:   t.starts[StartNauticalTwilight],
		EndAstroTwilight:      t.starts[StartAstroTwilight],
		StartAstroTwilight:    t.ends[EndAstroTwilight],
		StartNauticalTwilight: t.ends[EndNauticalTwilight],
		StartCivilTwilight:    t.ends[EndCivilTwilight],
		Sunrise:               t.ends[EndSunrise],
	}
}

// Calculator computes event tables from an Ephemeris
type Calculator struct {
	ephemeris Ephemeris
	logger    *slog.Logger
}

// NewCalculator creates a calculator. A nil logger discards output.
func NewCalculator(ephemeris Ephemeris, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Calculator{
		ephemeris: ephemeris,
		logger:    logger,
	}
}

// NightWindow returns [local noon on day, local noon on the next day) in zone
func NightWindow(day time.Time, zone *time.Location) (time.Time, time.Time) {
	local := day.In(zone)
	noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, zone)
	nextNoon := time.Date(local.Year(), local.Month(), local.Day()+1, 12, 0, 0, 0, zone)
	return noon, nextNoon
}

// ComputeDayEvents finds the night that starts on day at loc and assigns its
// transitions to the start and end events. All returned instants are in zone.
func (c *Calculator) ComputeDayEvents(loc Location, zone *time.Location, day time.Time) (*EventTable, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, fmt.Errorf("timezone is required")
	}

	from, to := NightWindow(day, zone)
	transitions, err := c.ephemeris.Transitions(loc, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ephemeris: %w", err)
	}

	local := make([]Transition, len(transitions))
	for i, tr := range transitions {
		local[i] = Transition{Time: tr.Time.In(zone), Phase: tr.Phase}
	}

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, line := range FormatTransitions(local) {
			c.logger.Debug(line)
		}
	}

	table, err := NewEventTable(local)
	if err != nil {
		return nil, err
	}
	table.Location = loc
	table.Zone = zone
	table.From = from
	table.To = to

	c.logger.Debug("computed night events",
		"latitude", loc.Latitude,
		"longitude", loc.Longitude,
		"zone", zone.String(),
		"from", from.Format(time.RFC3339),
		"to", to.Format(time.RFC3339))

	return table, nil
}

// NewEventTable assigns one night of transitions, sunset first, to the start
// and end events by position.
func NewEventTable(transitions []Transition) (*EventTable, error) {
	if len(transitions) != TransitionsPerNight {
		return nil, &UnexpectedSequenceLengthError{Got: len(transitions), Want: TransitionsPerNight}
	}
	for i, tr := range transitions {
		if tr.Phase != nightPhases[i] {
			return nil, &UnexpectedSequenceOrderError{Index: i, Got: tr.Phase, Want: nightPhases[i]}
		}
		if i > 0 && !tr.Time.After(transitions[i-1].Time) {
			return nil, &NonIncreasingTransitionError{Index: i, Time: tr.Time, Previous: transitions[i-1].Time}
		}
	}

	table := &EventTable{
		Transitions: append([]Transition(nil), transitions...),
	}

	i := 0
	for _, e := range StartEvents() {
		table.starts[e] = transitions[i].Time
		i++
	}
	for _, e := range EndEvents() {
		table.ends[e] = transitions[i].Time
		i++
	}

	return table, nil
}

// FormatTransitions describes each transition as the phase it starts or ends
func FormatTransitions(transitions []Transition) []string {
	lines := make([]string, 0, len(transitions))
	for i, tr := range transitions {
		stamp := tr.Time.Format("2006-01-02 15:04")
		var prev Phase
		switch {
		case i > 0:
			prev = transitions[i-1].Phase
		case tr.Phase == PhaseDay:
			prev = PhaseCivil
		default:
			prev = tr.Phase + 1
		}
		if prev < tr.Phase {
			lines = append(lines, fmt.Sprintf("%s %s starts", stamp, tr.Phase))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s ends", stamp, prev))
		}
	}
	return lines
}
