package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
)

const (
	// TimeZone is the zone every absolute time on the dashboard is shown in.
	TimeZone = "Europe/Berlin"

	// germanDateTime mirrors the de-DE medium date / short time style.
	germanDateTime = "02.01.2006, 15:04"

	// InvalidDate replaces absolute times that cannot be parsed.
	InvalidDate = "–"
)

var (
	// Locale is the display locale of the dashboard.
	Locale = language.MustParse("de-DE")

	// Berlin is the loaded TimeZone.
	Berlin = mustLoadLocation(TimeZone)

	ErrEmptyInstant = errors.New("empty instant")
)

// Zoned layouts RFC 3339 leaves out: ISO-8601 allows dropping the seconds.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Layouts without a zone are read as Berlin wall-clock time, date-only values as UTC midnight.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load time zone %s: %v", name, err))
	}
	return loc
}

// ParseInstant parses an ISO-8601 timestamp as sent by the feed.
func ParseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyInstant
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, Berlin); err == nil {
			return t, nil
		}
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: %w", value, err)
	}
	return t, nil
}

// FormatInstant renders t in German date style, pinned to Europe/Berlin.
func FormatInstant(t time.Time) string {
	return t.In(Berlin).Format(germanDateTime)
}

// FormatGermanDate parses an ISO-8601 timestamp and renders it with FormatInstant.
func FormatGermanDate(value string) string {
	t, err := ParseInstant(value)
	if err != nil {
		return InvalidDate
	}
	return FormatInstant(t)
}
