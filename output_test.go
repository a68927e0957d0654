package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/devskill-org/nfctools/scheduler"
	"github.com/devskill-org/nfctools/sun"
	"github.com/devskill-org/nfctools/window"
)

func TestPrintPlan_StartTime(t *testing.T) {
	now := time.Date(2021, 9, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		startsIn int64
		expected string
		absent   string
	}{
		{
			name:     "future",
			start:    now.Add(3 * time.Hour),
			startsIn: 3 * 3600,
			expected: "from now (10800 seconds)",
			absent:   "started",
		},
		{
			name:     "days in the past",
			start:    now.Add(-5 * 24 * time.Hour),
			startsIn: 0,
			expected: "started 5 days ago",
			absent:   "now\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &scheduler.RecordingPlan{
				Timezone: "UTC",
				Date:     tt.start.Format("2006-01-02"),
				Window: window.Window{
					Start:      tt.start,
					End:        tt.start.Add(8 * time.Hour),
					StartEvent: sun.StartAstroTwilight,
					EndEvent:   sun.EndAstroTwilight,
				},
				StartOffset: "0:00:00",
				EndOffset:   "0:00:00",
				StartsIn:    tt.startsIn,
			}

			var buf bytes.Buffer
			printPlan(&buf, plan, now)
			out := buf.String()

			if !strings.Contains(out, tt.expected) {
				t.Errorf("Expected %q in output:\n%s", tt.expected, out)
			}
			if strings.Contains(out, tt.absent) {
				t.Errorf("Did not expect %q in output:\n%s", tt.absent, out)
			}
		})
	}
}
