// Package utils provides utility functions for the nfctools application.
package utils //nolint:revive // utils is a common and acceptable package name

import (
	"math"
	"time"
)

// SecondsUntil returns the whole seconds from now until target, or 0 if target has passed.
func SecondsUntil(target time.Time) int64 {
	return SecondsBetween(time.Now(), target)
}

// SecondsBetween returns target-now rounded to whole seconds, clamped at 0.
func SecondsBetween(now, target time.Time) int64 {
	delta := target.Sub(now)
	if delta <= 0 {
		return 0
	}
	return int64(math.Round(delta.Seconds()))
}

// GetLocalString formats a time.Time in its own zone as YYYY-MM-DD HH:MM:SS ZONE.
func GetLocalString(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}
