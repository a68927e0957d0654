package utils

import (
	"testing"
	"time"
)

func TestSecondsUntil(t *testing.T) {
	tests := []struct {
		seconds  int
		expected int64
	}{
		{30, 30},
		{60, 60},
		{1000, 1000},
		{-30, 0},
	}

	for _, tt := range tests {
		got := SecondsUntil(time.Now().Add(time.Duration(tt.seconds) * time.Second))
		if got != tt.expected {
			t.Errorf("SecondsUntil(now%+ds): expected %d, got %d", tt.seconds, tt.expected, got)
		}
	}
}

func TestSecondsBetween(t *testing.T) {
	now := time.Date(2021, 9, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		target   time.Time
		expected int64
	}{
		{name: "future", target: now.Add(90 * time.Second), expected: 90},
		{name: "rounds up", target: now.Add(1500 * time.Millisecond), expected: 2},
		{name: "rounds down", target: now.Add(1400 * time.Millisecond), expected: 1},
		{name: "now", target: now, expected: 0},
		{name: "past", target: now.Add(-time.Hour), expected: 0},
		{name: "other zone", target: now.In(time.FixedZone("X", 3*3600)).Add(time.Minute), expected: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecondsBetween(now, tt.target); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestGetLocalString(t *testing.T) {
	ts := time.Date(2021, 9, 15, 19, 12, 5, 0, time.FixedZone("PDT", -7*3600))
	if got := GetLocalString(ts); got != "2021-09-15 19:12:05 PDT" {
		t.Errorf("Unexpected format: %s", got)
	}
}
