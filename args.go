package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/devskill-org/nfctools/scheduler"
	"github.com/devskill-org/nfctools/sun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the flag values shared by all commands
type options struct {
	configFile  string
	envFile     string
	trigger     string
	endTrigger  string
	startOffset string
	endOffset   string
	date        string
	timezone    string
	ephemeris   string
	logLevel    string
	logFormat   string
	jsonOutput  bool
	wait        bool
}

func (o *options) register(cmd *cobra.Command) {
	defaults := scheduler.DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.StringVarP(&o.configFile, "config", "c", "", "configuration file (.json, .yaml or .yml)")
	flags.StringVar(&o.envFile, "env-file", ".env", "env file with NFC_* variables, ignored when missing")
	flags.StringVarP(&o.trigger, "trigger", "t", defaults.StartTrigger,
		"event to start recording at: "+strings.Join(sun.StartEventNames(), ", "))
	flags.StringVarP(&o.endTrigger, "end-trigger", "e", defaults.EndTrigger,
		"event to stop recording at: "+strings.Join(sun.EndEventNames(), ", "))
	flags.StringVar(&o.startOffset, "start-offset", "",
		"time after/before the start trigger, H:M:S, M:S or M; use --start-offset=-00:00:00 for before")
	flags.StringVar(&o.endOffset, "end-offset", "",
		"time after/before the end trigger, H:M:S, M:S or M; use --end-offset=-00:00:00 for before")
	flags.StringVar(&o.date, "date", "", "night to plan as YYYY-MM-DD in the site's zone (default: today)")
	flags.StringVar(&o.timezone, "timezone", "", "IANA zone id overriding the lookup from coordinates")
	flags.StringVar(&o.ephemeris, "ephemeris", defaults.Ephemeris, "ephemeris backend: suncalc or sunrise")
	flags.StringVar(&o.logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&o.logFormat, "log-format", defaults.LogFormat, "log format: text, json")
	flags.BoolVar(&o.jsonOutput, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&o.wait, "wait", false, "block until the recording window starts")
}

// normalizeFlagName accepts the underscore spellings and the two-letter
// offset aliases of the original command line.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "so":
		name = "start-offset"
	case "eo":
		name = "end-offset"
	}
	return pflag.NormalizedName(name)
}

var negativeNumber = regexp.MustCompile(`^-(\d+\.?\d*|\.\d+)$`)

// normalizeArgs rewrites args so pflag can parse them:
// single-dash long flags (-trigger) become --trigger, and when a coordinate
// is negative all positionals are moved behind "--", in their original
// order, so they are not read as shorthands.
func normalizeArgs(cmd *cobra.Command, args []string) []string {
	out := make([]string, 0, len(args)+1)
	var positional []string
	separate := false

	expectValue := false
	for i, arg := range args {
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			separate = true
			break
		}
		if expectValue {
			out = append(out, arg)
			expectValue = false
			continue
		}
		if negativeNumber.MatchString(arg) {
			positional = append(positional, arg)
			separate = true
			continue
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			if len(positional) == 0 && isSubcommand(cmd, arg) {
				out = append(out, arg)
			} else {
				positional = append(positional, arg)
			}
			continue
		}

		name, hasValue := flagName(arg)
		flag := lookupFlag(cmd, name)
		if !strings.HasPrefix(arg, "--") && len(name) > 1 && flag != nil {
			arg = "-" + arg
		}
		out = append(out, arg)

		if flag == nil && len(name) == 1 {
			flag = cmd.PersistentFlags().ShorthandLookup(name)
		}
		if flag != nil && !hasValue && flag.Value.Type() != "bool" {
			expectValue = true
		}
	}

	if separate {
		out = append(out, "--")
	}
	return append(out, positional...)
}

func isSubcommand(cmd *cobra.Command, name string) bool {
	if name == "help" {
		return true
	}
	for _, c := range cmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

func flagName(arg string) (string, bool) {
	name := strings.TrimLeft(arg, "-")
	if idx := strings.Index(name, "="); idx >= 0 {
		return name[:idx], true
	}
	return name, false
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if len(name) <= 1 {
		return nil
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f
	}
	return cmd.Flags().Lookup(name)
}

// coordinateArgs accepts either no positionals (coordinates from config) or LATITUDE LONGITUDE
func coordinateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("expected LATITUDE LONGITUDE, got %d argument(s)", len(args))
	}
	return nil
}

func validLatitude(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid latitude %q: %w", s, err)
	}
	if err := (sun.Location{Latitude: v}).Validate(); err != nil {
		return 0, err
	}
	return v, nil
}

func validLongitude(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid longitude %q: %w", s, err)
	}
	if err := (sun.Location{Longitude: v}).Validate(); err != nil {
		return 0, err
	}
	return v, nil
}

// buildConfig layers defaults, config file, environment, positionals and flags
func buildConfig(cmd *cobra.Command, opts *options, args []string) (*scheduler.Config, error) {
	if err := scheduler.LoadEnv(opts.envFile); err != nil {
		return nil, err
	}

	config := scheduler.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := scheduler.LoadConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if len(args) == 2 {
		lat, err := validLatitude(args[0])
		if err != nil {
			return nil, err
		}
		lon, err := validLongitude(args[1])
		if err != nil {
			return nil, err
		}
		config.Latitude, config.Longitude = lat, lon
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		src  string
		dst  *string
	}{
		{"trigger", opts.trigger, &config.StartTrigger},
		{"end-trigger", opts.endTrigger, &config.EndTrigger},
		{"start-offset", opts.startOffset, &config.StartOffset},
		{"end-offset", opts.endOffset, &config.EndOffset},
		{"timezone", opts.timezone, &config.Timezone},
		{"ephemeris", opts.ephemeris, &config.Ephemeris},
		{"log-level", opts.logLevel, &config.LogLevel},
		{"log-format", opts.logFormat, &config.LogFormat},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dst = o.src
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
