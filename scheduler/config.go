package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/devskill-org/nfctools/sun"
	"github.com/devskill-org/nfctools/window"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Ephemeris backends
const (
	EphemerisSuncalc = "suncalc"
	EphemerisSunrise = "sunrise"
)

// Config represents the configuration for planning a recording night
type Config struct {
	// Location
	Latitude  float64 `json:"latitude" yaml:"latitude"`   // Rough latitude of the recording site
	Longitude float64 `json:"longitude" yaml:"longitude"` // Rough longitude of the recording site
	Timezone  string  `json:"timezone" yaml:"timezone"`   // IANA zone id; resolved from the coordinates when empty

	// Triggers
	StartTrigger string `json:"start_trigger" yaml:"start_trigger"` // sunset, civiltwilight, nauticaltwilight, astrotwilight
	EndTrigger   string `json:"end_trigger" yaml:"end_trigger"`     // astrotwilight, nauticaltwilight, civiltwilight, sunrise
	StartOffset  string `json:"start_offset" yaml:"start_offset"`   // [-]H:M:S, [-]M:S or [-]M relative to the start trigger
	EndOffset    string `json:"end_offset" yaml:"end_offset"`       // [-]H:M:S, [-]M:S or [-]M relative to the end trigger

	// Ephemeris backend: suncalc or sunrise
	Ephemeris string `json:"ephemeris" yaml:"ephemeris"`

	// Logging settings
	LogLevel  string `json:"log_level" yaml:"log_level"`   // Log level: debug, info, warn, error
	LogFormat string `json:"log_format" yaml:"log_format"` // Log format: text, json
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		StartTrigger: sun.StartAstroTwilight.String(),
		EndTrigger:   sun.EndAstroTwilight.String(),
		Ephemeris:    EphemerisSuncalc,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadYAMLConfigFromReader(file)
	default:
		return LoadConfigFromReader(file)
	}
}

// LoadConfigFromReader loads JSON configuration from an io.Reader
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	config := DefaultConfig()

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config JSON: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadYAMLConfigFromReader loads YAML configuration from an io.Reader
func LoadYAMLConfigFromReader(reader io.Reader) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(config); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadEnv loads variables from .env style files into the process environment.
// With no paths ".env" is used. Missing files are not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values with NFC_* environment variables
func (c *Config) ApplyEnv() error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"NFC_LATITUDE", &c.Latitude},
		{"NFC_LONGITUDE", &c.Longitude},
	}
	for _, f := range floats {
		if s, ok := os.LookupEnv(f.key); ok && s != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", f.key, err)
			}
			*f.dst = v
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"NFC_TIMEZONE", &c.Timezone},
		{"NFC_START_TRIGGER", &c.StartTrigger},
		{"NFC_END_TRIGGER", &c.EndTrigger},
		{"NFC_START_OFFSET", &c.StartOffset},
		{"NFC_END_OFFSET", &c.EndOffset},
		{"NFC_EPHEMERIS", &c.Ephemeris},
		{"NFC_LOG_LEVEL", &c.LogLevel},
		{"NFC_LOG_FORMAT", &c.LogFormat},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	return nil
}

// Location returns the configured coordinates
func (c *Config) Location() sun.Location {
	return sun.Location{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Triggers returns the parsed start and end events
func (c *Config) Triggers() (sun.StartEvent, sun.EndEvent, error) {
	start, err := sun.ParseStartEvent(c.StartTrigger)
	if err != nil {
		return 0, 0, err
	}
	end, err := sun.ParseEndEvent(c.EndTrigger)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Offsets returns the parsed start and end offsets. Empty strings are zero.
func (c *Config) Offsets() (time.Duration, time.Duration, error) {
	start, err := parseOffset(c.StartOffset)
	if err != nil {
		return 0, 0, fmt.Errorf("start_offset: %w", err)
	}
	end, err := parseOffset(c.EndOffset)
	if err != nil {
		return 0, 0, fmt.Errorf("end_offset: %w", err)
	}
	return start, end, nil
}

func parseOffset(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return window.ParseDelta(s)
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Location().Validate(); err != nil {
		return err
	}

	if _, _, err := c.Triggers(); err != nil {
		return err
	}

	if _, _, err := c.Offsets(); err != nil {
		return err
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone: %s", c.Timezone)
		}
	}

	validEphemeris := map[string]bool{
		EphemerisSuncalc: true,
		EphemerisSunrise: true,
	}
	if !validEphemeris[c.Ephemeris] {
		return fmt.Errorf("invalid ephemeris: %s, must be one of: suncalc, sunrise", c.Ephemeris)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s, must be one of: debug, info, warn, error", c.LogLevel)
	}

	// Validate log format
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format: %s, must be one of: text, json", c.LogFormat)
	}

	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
