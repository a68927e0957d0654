package sun

import (
	"fmt"
	"time"
)

// CoordinateRangeError represents a latitude or longitude outside its valid range
type CoordinateRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *CoordinateRangeError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g, got %g", e.Field, e.Min, e.Max, e.Value)
}

// UnexpectedSequenceLengthError is returned when the ephemeris does not yield
// exactly one full night of transitions, e.g. during polar day or polar night.
type UnexpectedSequenceLengthError struct {
	Got  int
	Want int
}

func (e *UnexpectedSequenceLengthError) Error() string {
	return fmt.Sprintf("expected %d twilight transitions, got %d", e.Want, e.Got)
}

// UnexpectedSequenceOrderError is returned when the transitions have the right
// count but do not follow sunset through sunrise.
type UnexpectedSequenceOrderError struct {
	Index int
	Got   Phase
	Want  Phase
}

func (e *UnexpectedSequenceOrderError) Error() string {
	return fmt.Sprintf("transition %d enters %s, expected %s", e.Index, e.Got, e.Want)
}

// NonIncreasingTransitionError is returned when a transition does not come
// strictly after the one before it.
type NonIncreasingTransitionError struct {
	Index    int
	Time     time.Time
	Previous time.Time
}

func (e *NonIncreasingTransitionError) Error() string {
	return fmt.Sprintf("transition %d at %s does not follow %s",
		e.Index, e.Time.Format(time.RFC3339), e.Previous.Format(time.RFC3339))
}

// UnknownEventError represents an event name outside the closed set of events
type UnknownEventError struct {
	Kind string
	Name string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown %s event %q", e.Kind, e.Name)
}
