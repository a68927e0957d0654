package sun

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// StartEvent is a transition that can trigger the start of a recording.
// Values are ordered from earliest to latest in the evening.
type StartEvent int

const (
	StartSunset StartEvent = iota
	StartCivilTwilight
	StartNauticalTwilight
	StartAstroTwilight

	numStartEvents = iota
)

// EndEvent is a transition that can trigger the end of a recording.
// Values are ordered from earliest to latest in the morning.
type EndEvent int

const (
	EndAstroTwilight EndEvent = iota
	EndNauticalTwilight
	EndCivilTwilight
	EndSunrise

	numEndEvents = iota
)

// TransitionsPerNight is the number of transitions between one sunset and the following sunrise
const TransitionsPerNight = numStartEvents + numEndEvents

var startEventNames = [numStartEvents]string{
	StartSunset:           "sunset",
	StartCivilTwilight:    "civiltwilight",
	StartNauticalTwilight: "nauticaltwilight",
	StartAstroTwilight:    "astrotwilight",
}

var endEventNames = [numEndEvents]string{
	EndAstroTwilight:    "astrotwilight",
	EndNauticalTwilight: "nauticaltwilight",
	EndCivilTwilight:    "civiltwilight",
	EndSunrise:          "sunrise",
}

// StartEvents returns all start events in chronological order
func StartEvents() []StartEvent {
	return []StartEvent{StartSunset, StartCivilTwilight, StartNauticalTwilight, StartAstroTwilight}
}

// EndEvents returns all end events in chronological order
func EndEvents() []EndEvent {
	return []EndEvent{EndAstroTwilight, EndNauticalTwilight, EndCivilTwilight, EndSunrise}
}

// Valid reports whether e is one of the declared start events
func (e StartEvent) Valid() bool {
	return e >= 0 && e < numStartEvents
}

func (e StartEvent) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return startEventNames[e]
}

// MarshalText implements encoding.TextMarshaler
func (e StartEvent) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, &UnknownEventError{Kind: "start", Name: strconv.Itoa(int(e))}
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *StartEvent) UnmarshalText(text []byte) error {
	v, err := ParseStartEvent(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Valid reports whether e is one of the declared end events
func (e EndEvent) Valid() bool {
	return e >= 0 && e < numEndEvents
}

func (e EndEvent) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return endEventNames[e]
}

// MarshalText implements encoding.TextMarshaler
func (e EndEvent) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, &UnknownEventError{Kind: "end", Name: strconv.Itoa(int(e))}
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *EndEvent) UnmarshalText(text []byte) error {
	v, err := ParseEndEvent(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseStartEvent converts a name such as "sunset" to a StartEvent
func ParseStartEvent(name string) (StartEvent, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range startEventNames {
		if s == n {
			return StartEvent(i), nil
		}
	}
	return 0, &UnknownEventError{Kind: "start", Name: name}
}

// ParseEndEvent converts a name such as "sunrise" to an EndEvent
func ParseEndEvent(name string) (EndEvent, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range endEventNames {
		if s == n {
			return EndEvent(i), nil
		}
	}
	return 0, &UnknownEventError{Kind: "end", Name: name}
}

// StartEventNames returns the accepted start event names
func StartEventNames() []string {
	return append([]string(nil), startEventNames[:]...)
}

// EndEventNames returns the accepted end event names
func EndEventNames() []string {
	return append([]string(nil), endEventNames[:]...)
}

// Phase is the sky state a transition moves into.
type Phase int

const (
	PhaseDark Phase = iota
	PhaseAstronomical
	PhaseNautical
	PhaseCivil
	PhaseDay
)

func (p Phase) String() string {
	switch p {
	case PhaseDark:
		return "night"
	case PhaseAstronomical:
		return "astronomical twilight"
	case PhaseNautical:
		return "nautical twilight"
	case PhaseCivil:
		return "civil twilight"
	case PhaseDay:
		return "day"
	default:
		return "unknown"
	}
}

// nightPhases is the phase entered by each transition from sunset to sunrise
var nightPhases = [TransitionsPerNight]Phase{
	PhaseCivil,        // sunset
	PhaseNautical,     // end of civil twilight
	PhaseAstronomical, // end of nautical twilight
	PhaseDark,         // end of astronomical twilight
	PhaseAstronomical, // start of astronomical twilight
	PhaseNautical,     // start of nautical twilight
	PhaseCivil,        // start of civil twilight
	PhaseDay,          // sunrise
}

// Transition is a single crossing between two sky phases
type Transition struct {
	Time  time.Time `json:"time"`
	Phase Phase     `json:"phase"`
}

// Location is a point on the WGS84 ellipsoid
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinates are within their valid ranges
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return &CoordinateRangeError{Field: "latitude", Value: l.Latitude, Min: -90, Max: 90}
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return &CoordinateRangeError{Field: "longitude", Value: l.Longitude, Min: -180, Max: 180}
	}
	return nil
}
