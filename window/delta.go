// Package window turns a night's event table into a recording window.
package window

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DeltaFormatError represents an offset string that is not [-]H:M:S, [-]M:S or [-]M
type DeltaFormatError struct {
	Input   string
	Message string
	Err     error
}

func (e *DeltaFormatError) Error() string {
	return fmt.Sprintf("invalid time delta %q: %s", e.Input, e.Message)
}

func (e *DeltaFormatError) Unwrap() error {
	return e.Err
}

const maxDeltaSeconds = math.MaxInt64 / int64(time.Second)

// ParseDelta parses a signed colon-separated offset, most significant field first:
//
//	"01:23:45" hours:minutes:seconds
//	"15:30"    minutes:seconds
//	"30"       minutes
//
// A leading minus applies to every field, so "-1:30" is minus 90 seconds.
func ParseDelta(text string) (time.Duration, error) {
	if strings.TrimSpace(text) == "" {
		return 0, &DeltaFormatError{Input: text, Message: "empty"}
	}

	fields := strings.Split(text, ":")
	if len(fields) > 3 {
		return 0, &DeltaFormatError{Input: text, Message: fmt.Sprintf("expected 1 to 3 fields, got %d", len(fields))}
	}

	negative := strings.HasPrefix(strings.TrimSpace(fields[0]), "-")

	values := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return 0, &DeltaFormatError{Input: text, Message: fmt.Sprintf("field %d is not a number", i+1), Err: err}
		}
		if negative && v > 0 {
			v = -v
		}
		values[i] = v
	}

	// pad to hours, minutes, seconds
	var h, m, s int64
	switch len(values) {
	case 3:
		h, m, s = values[0], values[1], values[2]
	case 2:
		m, s = values[0], values[1]
	case 1:
		m = values[0]
	}

	total, ok := sumSeconds(h, m, s)
	if !ok {
		return 0, &DeltaFormatError{Input: text, Message: "out of range"}
	}

	return time.Duration(total) * time.Second, nil
}

func sumSeconds(h, m, s int64) (int64, bool) {
	const limit = maxDeltaSeconds
	if h == math.MinInt64 || m == math.MinInt64 || s == math.MinInt64 {
		return 0, false
	}
	if abs(h) > limit/3600 || abs(m) > limit/60 || abs(s) > limit {
		return 0, false
	}
	total := h*3600 + m*60 + s
	if abs(total) > limit {
		return 0, false
	}
	return total, true
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatDelta renders d as [-]H:MM:SS, the same layout ParseDelta accepts
func FormatDelta(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, secs/3600, (secs/60)%60, secs%60)
}
