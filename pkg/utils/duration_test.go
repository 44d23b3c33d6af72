package utils

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		target   time.Time
		expected string
	}{
		{"past", now.Add(-time.Hour), DueNow},
		{"equal", now, DueNow},
		{"sub second", now.Add(999 * time.Millisecond), "0s"},
		{"seconds only", now.Add(12 * time.Second), "12s"},
		{"minutes and seconds", now.Add(45*time.Minute + 12*time.Second), "45m 12s"},
		{"zero seconds kept", now.Add(5 * time.Minute), "5m 0s"},
		{"hours", now.Add(time.Hour + time.Minute + time.Second), "1h 1m 1s"},
		{"hours zero minutes", now.Add(2*time.Hour + 3*time.Second), "2h 0m 3s"},
		{"days", now.Add(2*24*time.Hour + 3*time.Hour + 15*time.Minute), "2d 3h 15m 0s"},
		{"days only", now.Add(24 * time.Hour), "1d 0h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Countdown(tt.target, now))
		})
	}
}

func TestCountdownUnits(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for d := 0; d < 3; d++ {
		for _, h := range []int{0, 1, 23} {
			for _, m := range []int{0, 1, 59} {
				for _, s := range []int{1, 30, 59} {
					diff := time.Duration(d)*24*time.Hour +
						time.Duration(h)*time.Hour +
						time.Duration(m)*time.Minute +
						time.Duration(s)*time.Second
					got := Countdown(now.Add(diff), now)

					var want string
					switch {
					case d > 0:
						want = fmtUnits(d, h, m, s, 4)
					case h > 0:
						want = fmtUnits(d, h, m, s, 3)
					case m > 0:
						want = fmtUnits(d, h, m, s, 2)
					default:
						want = fmtUnits(d, h, m, s, 1)
					}
					assert.Equal(t, want, got, "d=%d h=%d m=%d s=%d", d, h, m, s)
				}
			}
		}
	}
}

func fmtUnits(d, h, m, s, n int) string {
	all := []string{
		strconv.Itoa(d) + "d",
		strconv.Itoa(h) + "h",
		strconv.Itoa(m) + "m",
		strconv.Itoa(s) + "s",
	}
	return strings.Join(all[4-n:], " ")
}

func TestFormatCountdown(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("iso target", func(t *testing.T) {
		target := now.Add(30 * time.Second).Format(time.RFC3339)
		assert.Equal(t, "30s", FormatCountdown(target, now))
	})

	t.Run("idempotent", func(t *testing.T) {
		target := now.Add(3661 * time.Second).Format(time.RFC3339Nano)
		first := FormatCountdown(target, now)
		assert.Equal(t, first, FormatCountdown(target, now))
		assert.Equal(t, "1h 1m 1s", first)
	})

	t.Run("targets without seconds", func(t *testing.T) {
		assert.Equal(t, "30m 0s", FormatCountdown("2026-10-18T12:30Z", now))
		assert.Equal(t, "30m 0s", FormatCountdown("2026-10-18T14:30+02:00", now))
		assert.Equal(t, "18.10.2026, 14:30", FormatGermanDate("2026-10-18T12:30Z"))
	})

	t.Run("malformed target is due", func(t *testing.T) {
		for _, target := range []string{"", "not-a-date", "2026-13-45T99:00:00Z"} {
			got := FormatCountdown(target, now)
			assert.Equal(t, DueNow, got)
			assert.NotContains(t, got, "NaN")
		}
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500.00µs", FormatDuration(500*time.Microsecond))
	assert.Equal(t, "20.00ms", FormatDuration(20*time.Millisecond))
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
}
