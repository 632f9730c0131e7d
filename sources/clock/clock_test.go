package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarTodayUsesLocation(t *testing.T) {
	tashkent, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)

	// 21:30 UTC is already the next day in UTC+5.
	now := time.Date(2026, time.March, 9, 21, 30, 0, 0, time.UTC)

	assert.Equal(t, Day{2026, time.March, 9}, NewCalendar(time.UTC).Today(now))
	assert.Equal(t, Day{2026, time.March, 10}, NewCalendar(tashkent).Today(now))
	assert.Equal(t, "2026-03-10", NewCalendar(tashkent).Today(now).String())
}

func TestCalendarDefaultsToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewCalendar(nil).Location())
}

func TestWithin(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	stamps := []time.Time{
		now.Add(-90 * time.Second),
		now.Add(-60 * time.Second),
		now.Add(-59 * time.Second),
		now.Add(-time.Second),
	}

	kept := Within(stamps, now, time.Minute)

	assert.Equal(t, []time.Time{now.Add(-59 * time.Second), now.Add(-time.Second)}, kept)
	assert.Empty(t, Within(nil, now, time.Minute))
}

func TestDayIsZero(t *testing.T) {
	assert.True(t, Day{}.IsZero())
	assert.False(t, Day{2026, time.January, 1}.IsZero())
}
