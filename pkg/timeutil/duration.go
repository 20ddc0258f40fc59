package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock renders a duration as a zero-padded HH:MM:SS stopwatch reading.
// Negative durations render as 00:00:00.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Countdown renders a duration as a compact countdown: H:MM:SS with hours
// remaining, M:SS under an hour.
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Span renders a duration in loose hour/minute terms for history listings,
// for example "16h 12m" or "45m".
func Span(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	hours := total / 60
	minutes := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ParseSplit parses a fasting window written as "fasting:eating", for
// example "16:8". Both halves must be positive integers.
func ParseSplit(s string) (fastingHours, eatingHours int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid window %q, want fasting:eating like 16:8", s)
	}
	fastingHours, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid fasting hours %q: %w", parts[0], err)
	}
	eatingHours, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid eating hours %q: %w", parts[1], err)
	}
	if fastingHours <= 0 || eatingHours <= 0 {
		return 0, 0, fmt.Errorf("window halves must be positive, got %d:%d", fastingHours, eatingHours)
	}
	return fastingHours, eatingHours, nil
}
