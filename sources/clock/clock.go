package clock

import (
	"fmt"
	"relaybot/sources/configuration"
	"time"
)

type Clock interface {
	Now() time.Time
}

type System struct{}

func NewSystem() Clock {
	return System{}
}

func (System) Now() time.Time {
	return time.Now()
}

// Day is a calendar date in the tenant time zone.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Date)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

type Calendar struct {
	location *time.Location
}

func NewCalendar(location *time.Location) *Calendar {
	if location == nil {
		location = time.UTC
	}
	return &Calendar{location: location}
}

func NewCalendarFromConfig(config *configuration.Config) (*Calendar, error) {
	location, err := time.LoadLocation(config.Governance.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %s: %w", config.Governance.TimeZone, err)
	}
	return NewCalendar(location), nil
}

func (x *Calendar) Location() *time.Location {
	return x.location
}

func (x *Calendar) Today(now time.Time) Day {
	year, month, date := now.In(x.location).Date()
	return Day{Year: year, Month: month, Date: date}
}

// Within keeps the timestamps strictly newer than now-window, preserving order.
// The input slice is reused.
func Within(timestamps []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
