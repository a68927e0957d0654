package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/devskill-org/nfctools/scheduler"
	"github.com/devskill-org/nfctools/sun"
	"github.com/devskill-org/nfctools/utils"
	"github.com/devskill-org/nfctools/window"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newPlan(cmd *cobra.Command, opts *options, args []string) (*scheduler.Planner, *scheduler.RecordingPlan, error) {
	config, err := buildConfig(cmd, opts, args)
	if err != nil {
		return nil, nil, err
	}

	logger := scheduler.NewLogger(config.LogLevel, config.LogFormat, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "config", config.String())

	planner, err := scheduler.NewPlanner(config, logger)
	if err != nil {
		return nil, nil, err
	}

	var plan *scheduler.RecordingPlan
	if opts.date != "" {
		d, err := time.Parse("2006-01-02", opts.date)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", opts.date, err)
		}
		plan, err = planner.PlanDate(d.Year(), d.Month(), d.Day())
		if err != nil {
			return nil, nil, err
		}
	} else {
		plan, err = planner.Plan(time.Now())
		if err != nil {
			return nil, nil, err
		}
	}

	return planner, plan, nil
}

func runPlan(cmd *cobra.Command, opts *options, args []string) error {
	planner, plan, err := newPlan(cmd, opts, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := writeJSON(out, plan); err != nil {
			return err
		}
	} else {
		printPlan(out, plan, time.Now())
	}

	if opts.wait {
		return planner.WaitForStart(cmd.Context(), plan)
	}
	return nil
}

func runEvents(cmd *cobra.Command, opts *options, args []string) error {
	_, plan, err := newPlan(cmd, opts, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, struct {
			Timezone    string           `json:"timezone"`
			Date        string           `json:"date"`
			SunTimes    sun.SunTimes     `json:"sun_times"`
			Transitions []sun.Transition `json:"transitions"`
		}{
			Timezone:    plan.Timezone,
			Date:        plan.Date,
			SunTimes:    plan.Events.SunTimes(),
			Transitions: plan.Events.Transitions,
		})
	}

	printEvents(out, plan)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func printPlan(w io.Writer, plan *scheduler.RecordingPlan, now time.Time) {
	fmt.Fprintf(w, "Recording plan for %.6f, %.6f (%s), night of %s\n",
		plan.Location.Latitude, plan.Location.Longitude, plan.Timezone, plan.Date)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Start events:")
	for _, nt := range plan.StartEvents {
		fmt.Fprintf(w, "  %-17s %s\n", nt.Name, utils.GetLocalString(nt.Time))
	}
	fmt.Fprintln(w, "End events:")
	for _, nt := range plan.EndEvents {
		fmt.Fprintf(w, "  %-17s %s\n", nt.Name, utils.GetLocalString(nt.Time))
	}
	fmt.Fprintln(w)

	win := plan.Window
	fmt.Fprintln(w, "Window:")
	fmt.Fprintf(w, "  start   %s  (%s %s)\n", utils.GetLocalString(win.Start), win.StartEvent, plan.StartOffset)
	fmt.Fprintf(w, "  end     %s  (%s %s)\n", utils.GetLocalString(win.End), win.EndEvent, plan.EndOffset)
	fmt.Fprintf(w, "  length  %s\n", window.FormatDelta(win.Duration()))
	if !win.Valid() {
		fmt.Fprintln(w, "  warning: window ends before it starts")
	}
	if plan.StartsIn > 0 {
		fmt.Fprintf(w, "  starts  %s (%d seconds)\n", humanize.RelTime(win.Start, now, "ago", "from now"), plan.StartsIn)
	} else {
		fmt.Fprintf(w, "  started %s\n", humanize.RelTime(win.Start, now, "ago", "from now"))
	}
}

func printEvents(w io.Writer, plan *scheduler.RecordingPlan) {
	fmt.Fprintf(w, "Twilight transitions for %.6f, %.6f (%s), night of %s\n",
		plan.Location.Latitude, plan.Location.Longitude, plan.Timezone, plan.Date)
	for _, line := range sun.FormatTransitions(plan.Events.Transitions) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
