package utils

import (
	"fmt"
	"strings"
	"time"
)

// DueNow is shown instead of a countdown once a job's next run has been reached.
const DueNow = "Jetzt fällig"

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// FormatCountdown renders the time left until the ISO-8601 instant target.
// Unparsable targets are reported as due.
func FormatCountdown(target string, now time.Time) string {
	t, err := ParseInstant(target)
	if err != nil {
		return DueNow
	}
	return Countdown(t, now)
}

// Countdown renders target-now as "2d 3h 15m 0s", dropping leading zero units.
// Seconds are always present.
func Countdown(target, now time.Time) string {
	diff := target.Sub(now)
	if diff <= 0 {
		return DueNow
	}

	totalSeconds := int64(diff / time.Second)
	days := totalSeconds / secondsPerDay
	hours := (totalSeconds % secondsPerDay) / secondsPerHour
	minutes := (totalSeconds % secondsPerHour) / secondsPerMinute
	seconds := totalSeconds % secondsPerMinute

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// FormatDuration renders a duration for log lines.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fµs", float64(d.Microseconds()))
	} else if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Milliseconds()))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
