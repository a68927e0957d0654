package window

import (
	"errors"
	"testing"
	"time"
)

func TestParseDelta(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		str      string
	}{
		{input: "01:23:45", expected: time.Hour + 23*time.Minute + 45*time.Second, str: "1h23m45s"},
		{input: "-1:30", expected: -90 * time.Second, str: "-1m30s"},
		{input: "-30", expected: -30 * time.Minute, str: "-30m0s"},
		{input: "15:30", expected: 15*time.Minute + 30*time.Second, str: "15m30s"},
		{input: "-00:15:30", expected: -(15*time.Minute + 30*time.Second), str: "-15m30s"},
		{input: "-0:30", expected: -30 * time.Second, str: "-30s"},
		{input: "0", expected: 0, str: "0s"},
		{input: " 2 : 05 ", expected: 2*time.Minute + 5*time.Second, str: "2m5s"},
		{input: "1:75", expected: 2*time.Minute + 15*time.Second, str: "2m15s"},
		{input: "+5", expected: 5 * time.Minute, str: "5m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDelta(tt.input)
			if err != nil {
				t.Fatalf("ParseDelta(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if got.String() != tt.str {
				t.Errorf("Expected string %q, got %q", tt.str, got.String())
			}
		})
	}
}

func TestParseDelta_Errors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"1:2:3:4",
		"ab",
		"1:xx",
		"1::2",
		"1.5",
		"99999999999999999999",
		"-9223372036854775808",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDelta(input)
			var formatErr *DeltaFormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Expected DeltaFormatError, got %v", err)
			}
			if formatErr.Input != input {
				t.Errorf("Expected input %q in error, got %q", input, formatErr.Input)
			}
		})
	}
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00:00"},
		{time.Hour + 23*time.Minute + 45*time.Second, "1:23:45"},
		{-90 * time.Second, "-0:01:30"},
		{26 * time.Hour, "26:00:00"},
	}

	for _, tt := range tests {
		if got := FormatDelta(tt.d); got != tt.expected {
			t.Errorf("FormatDelta(%v): expected %q, got %q", tt.d, tt.expected, got)
		}
		back, err := ParseDelta(FormatDelta(tt.d))
		if err != nil || back != tt.d {
			t.Errorf("FormatDelta(%v) did not parse back: %v %v", tt.d, back, err)
		}
	}
}
