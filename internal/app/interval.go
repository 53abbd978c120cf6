package app

import (
	"fmt"
	"regexp"
	"strconv"
)

// intervalPattern matches the textual interval form durations are stored
// in: HH:MM:SS with optional fractional seconds, optionally preceded by a
// day count the way Postgres renders intervals over 24 hours.
var intervalPattern = regexp.MustCompile(`(?:(\d+)\s+days?\s+)?(\d+):(\d{2}):(\d{2})(?:\.(\d{1,3}))?`)

// ParseInterval converts interval text to milliseconds. Malformed or
// empty input means zero elapsed time, never an error.
func ParseInterval(text string) float64 {
	m := intervalPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])

	total := ((days*24+hours)*3600 + minutes*60 + seconds) * 1000
	if m[5] != "" {
		frac := m[5]
		for len(frac) < 3 {
			frac += "0"
		}
		ms, _ := strconv.Atoi(frac)
		total += ms
	}
	return float64(total)
}

// FormatInterval renders a millisecond count as zero-padded HH:MM:SS.
// Fractional seconds are truncated, not rounded; hours may exceed 24.
func FormatInterval(ms float64) string {
	if ms < 0 {
		ms = 0
	}
	total := int64(ms / 1000)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
