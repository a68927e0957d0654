package window

import (
	"fmt"
	"time"

	"github.com/devskill-org/nfctools/sun"
)

// Window is the span to record, derived from two trigger events and their offsets
type Window struct {
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	StartEvent  sun.StartEvent `json:"start_event"`
	EndEvent    sun.EndEvent   `json:"end_event"`
	StartOffset time.Duration  `json:"-"`
	EndOffset   time.Duration  `json:"-"`
}

// Duration returns the length of the window, negative if End precedes Start
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Valid reports whether the window ends after it starts
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

func (w Window) String() string {
	return fmt.Sprintf("%s (%s %s) -> %s (%s %s)",
		w.Start.Format(time.RFC3339), w.StartEvent, FormatDelta(w.StartOffset),
		w.End.Format(time.RFC3339), w.EndEvent, FormatDelta(w.EndOffset))
}

// Derive looks up the trigger instants in table and shifts each by its offset.
// The order of the resulting start and end is not checked.
func Derive(table *sun.EventTable, startEvent sun.StartEvent, startOffset time.Duration, endEvent sun.EndEvent, endOffset time.Duration) (Window, error) {
	if table == nil {
		return Window{}, fmt.Errorf("event table is required")
	}

	start, err := table.Start(startEvent)
	if err != nil {
		return Window{}, err
	}
	end, err := table.End(endEvent)
	if err != nil {
		return Window{}, err
	}

	return Window{
		Start:       start.Add(startOffset),
		End:         end.Add(endOffset),
		StartEvent:  startEvent,
		EndEvent:    endEvent,
		StartOffset: startOffset,
		EndOffset:   endOffset,
	}, nil
}
