package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devskill-org/nfctools/sun"
	"github.com/devskill-org/nfctools/timezone"
)

var testPhases = []sun.Phase{
	sun.PhaseCivil, sun.PhaseNautical, sun.PhaseAstronomical, sun.PhaseDark,
	sun.PhaseAstronomical, sun.PhaseNautical, sun.PhaseCivil, sun.PhaseDay,
}

// fakeEphemeris places the night at from+7h, one transition per hour
func fakeEphemeris() sun.Ephemeris {
	return sun.EphemerisFunc(func(loc sun.Location, from, to time.Time) ([]sun.Transition, error) {
		out := make([]sun.Transition, len(testPhases))
		for i, p := range testPhases {
			out[i] = sun.Transition{Time: from.Add(time.Duration(7+i) * time.Hour), Phase: p}
		}
		return out, nil
	})
}

func testConfig() *Config {
	config := DefaultConfig()
	config.Latitude = 47.8700447279009
	config.Longitude = -122.10485398788514
	return config
}

func TestPlanner_PlanDate(t *testing.T) {
	config := testConfig()
	config.StartTrigger = "sunset"
	config.StartOffset = "-15:30"
	config.EndTrigger = "sunrise"
	config.EndOffset = "15:30"

	planner := NewPlannerWith(config, timezone.Fixed("America/Los_Angeles"), fakeEphemeris(), nil)
	planner.now = func() time.Time {
		return time.Date(2021, 9, 15, 18, 0, 0, 0, time.UTC)
	}

	plan, err := planner.PlanDate(2021, time.September, 15)
	if err != nil {
		t.Fatalf("PlanDate failed: %v", err)
	}

	zone, _ := time.LoadLocation("America/Los_Angeles")
	noon := time.Date(2021, 9, 15, 12, 0, 0, 0, zone)
	wantStart := noon.Add(7*time.Hour - 15*time.Minute - 30*time.Second)
	wantEnd := noon.Add(14*time.Hour + 15*time.Minute + 30*time.Second)

	if !plan.Window.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, plan.Window.Start)
	}
	if !plan.Window.End.Equal(wantEnd) {
		t.Errorf("Expected end %v, got %v", wantEnd, plan.Window.End)
	}
	if plan.Timezone != "America/Los_Angeles" || plan.Date != "2021-09-15" {
		t.Errorf("Unexpected plan metadata %s %s", plan.Timezone, plan.Date)
	}
	if len(plan.StartEvents) != 4 || len(plan.EndEvents) != 4 {
		t.Errorf("Expected 4+4 events, got %d+%d", len(plan.StartEvents), len(plan.EndEvents))
	}
	if plan.StartOffset != "-0:15:30" || plan.EndOffset != "0:15:30" {
		t.Errorf("Unexpected offsets %s %s", plan.StartOffset, plan.EndOffset)
	}

	// 18:00Z is 11:00 PDT, so the start is 7h44m30s later
	if want := int64(7*3600 + 44*60 + 30); plan.StartsIn != want {
		t.Errorf("Expected StartsIn %d, got %d", want, plan.StartsIn)
	}
}

func TestPlanner_PlanUsesZoneCalendarDay(t *testing.T) {
	var gotFrom time.Time
	eph := sun.EphemerisFunc(func(loc sun.Location, from, to time.Time) ([]sun.Transition, error) {
		gotFrom = from
		return fakeEphemeris().Transitions(loc, from, to)
	})

	planner := NewPlannerWith(testConfig(), timezone.Fixed("America/Los_Angeles"), eph, nil)

	// 03:00Z on the 16th is still the 15th in Los Angeles
	if _, err := planner.Plan(time.Date(2021, 9, 16, 3, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if gotFrom.Day() != 15 || gotFrom.Hour() != 12 {
		t.Errorf("Expected window from local noon on the 15th, got %v", gotFrom)
	}
}

func TestPlanner_Errors(t *testing.T) {
	t.Run("zone lookup", func(t *testing.T) {
		planner := NewPlannerWith(testConfig(), timezone.Fixed(""), fakeEphemeris(), nil)
		_, err := planner.PlanDate(2021, time.September, 15)
		var lookupErr *timezone.ZoneLookupError
		if !errors.As(err, &lookupErr) {
			t.Errorf("Expected ZoneLookupError, got %v", err)
		}
	})

	t.Run("sequence length", func(t *testing.T) {
		eph := sun.EphemerisFunc(func(loc sun.Location, from, to time.Time) ([]sun.Transition, error) {
			return nil, nil
		})
		planner := NewPlannerWith(testConfig(), timezone.Fixed("UTC"), eph, nil)
		_, err := planner.PlanDate(2021, time.June, 21)
		var lengthErr *sun.UnexpectedSequenceLengthError
		if !errors.As(err, &lengthErr) {
			t.Errorf("Expected UnexpectedSequenceLengthError, got %v", err)
		}
	})

	t.Run("unknown trigger", func(t *testing.T) {
		config := testConfig()
		config.EndTrigger = "noon"
		planner := NewPlannerWith(config, timezone.Fixed("UTC"), fakeEphemeris(), nil)
		_, err := planner.PlanDate(2021, time.June, 21)
		var unknown *sun.UnknownEventError
		if !errors.As(err, &unknown) {
			t.Errorf("Expected UnknownEventError, got %v", err)
		}
	})
}

func TestNewPlanner_RealBackends(t *testing.T) {
	for _, name := range []string{EphemerisSuncalc, EphemerisSunrise} {
		t.Run(name, func(t *testing.T) {
			config := testConfig()
			config.Ephemeris = name

			planner, err := NewPlanner(config, nil)
			if err != nil {
				t.Fatalf("NewPlanner failed: %v", err)
			}

			plan, err := planner.PlanDate(2021, time.September, 15)
			if err != nil {
				t.Fatalf("PlanDate failed: %v", err)
			}
			if plan.Timezone != "America/Los_Angeles" {
				t.Errorf("Expected America/Los_Angeles, got %s", plan.Timezone)
			}
			if !plan.Window.Valid() {
				t.Errorf("Expected astro dusk before astro dawn, got %v", plan.Window)
			}
		})
	}

	config := testConfig()
	config.Ephemeris = "de421"
	if _, err := NewPlanner(config, nil); err == nil {
		t.Error("Expected error for unknown ephemeris")
	}
}

func TestNewEphemeris_EmptyName(t *testing.T) {
	if _, err := NewEphemeris(""); err == nil {
		t.Error("Expected NewEphemeris to reject an empty name")
	}

	config := testConfig()
	config.Ephemeris = ""
	if err := config.Validate(); err == nil {
		t.Error("Expected Validate to reject an empty ephemeris")
	}
	if _, err := NewPlanner(config, nil); err == nil {
		t.Error("Expected NewPlanner to reject an empty ephemeris")
	}
}

func TestPlanner_WaitForStart(t *testing.T) {
	now := time.Date(2021, 9, 15, 18, 0, 0, 0, time.UTC)
	planner := NewPlannerWith(testConfig(), timezone.Fixed("UTC"), fakeEphemeris(), nil)
	planner.now = func() time.Time { return now }

	past := &RecordingPlan{}
	past.Window.Start = now.Add(-time.Minute)
	if err := planner.WaitForStart(context.Background(), past); err != nil {
		t.Errorf("Expected immediate return for started window, got %v", err)
	}

	future := &RecordingPlan{}
	future.Window.Start = now.Add(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := planner.WaitForStart(ctx, future); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}

	soon := &RecordingPlan{}
	soon.Window.Start = now.Add(time.Second)
	if err := planner.WaitForStart(context.Background(), soon); err != nil {
		t.Errorf("Expected wait to complete, got %v", err)
	}
}
