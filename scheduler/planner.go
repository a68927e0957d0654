package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/devskill-org/nfctools/sun"
	"github.com/devskill-org/nfctools/timezone"
	"github.com/devskill-org/nfctools/utils"
	"github.com/devskill-org/nfctools/window"
	"github.com/google/uuid"
)

// RecordingPlan is the computed recording window for one night
type RecordingPlan struct {
	ID          uuid.UUID       `json:"id"`
	Location    sun.Location    `json:"location"`
	Timezone    string          `json:"timezone"`
	Date        string          `json:"date"`
	Events      *sun.EventTable `json:"-"`
	StartEvents []sun.NamedTime `json:"start_events"`
	EndEvents   []sun.NamedTime `json:"end_events"`
	Window      window.Window   `json:"window"`
	StartOffset string          `json:"start_offset"`
	EndOffset   string          `json:"end_offset"`
	StartsIn    int64           `json:"starts_in_seconds"`
}

// NewEphemeris returns the ephemeris backend registered under name
func NewEphemeris(name string) (sun.Ephemeris, error) {
	switch name {
	case EphemerisSuncalc:
		return sun.NewSuncalcEphemeris(), nil
	case EphemerisSunrise:
		return sun.NewSunriseEphemeris(), nil
	default:
		return nil, fmt.Errorf("unknown ephemeris %q", name)
	}
}

// Planner turns a Config into recording plans
type Planner struct {
	config     *Config
	resolver   timezone.Resolver
	calculator *sun.Calculator
	logger     *slog.Logger

	// Test hook for the wall clock
	now func() time.Time
}

// NewPlanner creates a planner from config. The zone is resolved from the
// coordinates unless config.Timezone is set.
func NewPlanner(config *Config, logger *slog.Logger) (*Planner, error) {
	eph, err := NewEphemeris(config.Ephemeris)
	if err != nil {
		return nil, err
	}

	var resolver timezone.Resolver = timezone.NewLatLongResolver()
	if config.Timezone != "" {
		resolver = timezone.Fixed(config.Timezone)
	}

	return NewPlannerWith(config, resolver, eph, logger), nil
}

// NewPlannerWith creates a planner with explicit collaborators
func NewPlannerWith(config *Config, resolver timezone.Resolver, eph sun.Ephemeris, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Planner{
		config:     config,
		resolver:   resolver,
		calculator: sun.NewCalculator(eph, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// Plan computes the recording window for the night starting on the calendar
// day that day falls on in the site's zone.
func (p *Planner) Plan(day time.Time) (*RecordingPlan, error) {
	zone, name, err := p.zone()
	if err != nil {
		return nil, err
	}
	return p.plan(zone, name, day.In(zone))
}

// PlanDate computes the recording window for the night starting on the given
// calendar date in the site's zone.
func (p *Planner) PlanDate(year int, month time.Month, day int) (*RecordingPlan, error) {
	zone, name, err := p.zone()
	if err != nil {
		return nil, err
	}
	return p.plan(zone, name, time.Date(year, month, day, 12, 0, 0, 0, zone))
}

func (p *Planner) zone() (*time.Location, string, error) {
	zone, name, err := timezone.Lookup(p.resolver, p.config.Latitude, p.config.Longitude)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve timezone: %w", err)
	}
	p.logger.Debug("resolved timezone", "zone", name)
	return zone, name, nil
}

func (p *Planner) plan(zone *time.Location, zoneName string, day time.Time) (*RecordingPlan, error) {
	startEvent, endEvent, err := p.config.Triggers()
	if err != nil {
		return nil, err
	}
	startOffset, endOffset, err := p.config.Offsets()
	if err != nil {
		return nil, err
	}

	table, err := p.calculator.ComputeDayEvents(p.config.Location(), zone, day)
	if err != nil {
		return nil, fmt.Errorf("failed to compute solar events: %w", err)
	}

	w, err := window.Derive(table, startEvent, startOffset, endEvent, endOffset)
	if err != nil {
		return nil, err
	}

	plan := &RecordingPlan{
		ID:          uuid.New(),
		Location:    p.config.Location(),
		Timezone:    zoneName,
		Date:        day.Format("2006-01-02"),
		Events:      table,
		StartEvents: table.StartTimes(),
		EndEvents:   table.EndTimes(),
		Window:      w,
		StartOffset: window.FormatDelta(startOffset),
		EndOffset:   window.FormatDelta(endOffset),
		StartsIn:    utils.SecondsBetween(p.now(), w.Start),
	}

	if !w.Valid() {
		p.logger.Warn("recording window ends before it starts",
			"plan", plan.ID, "start", w.Start.Format(time.RFC3339), "end", w.End.Format(time.RFC3339))
	}

	p.logger.Info("recording window planned",
		"plan", plan.ID,
		"zone", zoneName,
		"start", w.Start.Format(time.RFC3339),
		"start_event", startEvent.String(),
		"end", w.End.Format(time.RFC3339),
		"end_event", endEvent.String(),
		"starts_in_seconds", plan.StartsIn)

	return plan, nil
}

// WaitForStart blocks until the plan's window starts or ctx is done.
func (p *Planner) WaitForStart(ctx context.Context, plan *RecordingPlan) error {
	wait := time.Duration(utils.SecondsBetween(p.now(), plan.Window.Start)) * time.Second
	if wait <= 0 {
		p.logger.Info("recording window already started", "plan", plan.ID)
		return nil
	}

	p.logger.Info("waiting for recording window", "plan", plan.ID, "wait", wait.String())

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		p.logger.Info("recording window started", "plan", plan.ID)
		return nil
	case <-ctx.Done():
		p.logger.Info("stopped waiting due to context cancellation", "plan", plan.ID)
		return ctx.Err()
	}
}
