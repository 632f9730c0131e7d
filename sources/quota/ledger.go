package quota

import (
	"relaybot/sources/clock"
	"sort"
	"sync"
	"time"
)

// Limits resolves the daily message limit of a user at a given instant.
type Limits interface {
	DailyLimit(userID int64, now time.Time) int
}

type Verdict struct {
	Allowed bool
	Used    int
	Limit   int
}

type Standing struct {
	UserID   int64
	Lifetime int
	Daily    int
}

type record struct {
	lifetime int
	daily    int
}

type Ledger struct {
	mu        sync.RWMutex
	calendar  *clock.Calendar
	limits    Limits
	records   map[int64]*record
	lastReset clock.Day
}

func NewLedger(calendar *clock.Calendar, limits Limits) *Ledger {
	return &Ledger{
		calendar: calendar,
		limits:   limits,
		records:  make(map[int64]*record),
	}
}

// Rollover clears every daily counter once the calendar day has changed since the
// previous call and returns the current day. Calling it again on the same day is a no-op.
func (x *Ledger) Rollover(now time.Time) clock.Day {
	today := x.calendar.Today(now)

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.lastReset == today {
		return today
	}

	for _, r := range x.records {
		r.daily = 0
	}
	x.lastReset = today

	return today
}

func (x *Ledger) Check(userID int64, now time.Time) Verdict {
	limit := x.limits.DailyLimit(userID, now)

	x.mu.RLock()
	used := 0
	if r, ok := x.records[userID]; ok {
		used = r.daily
	}
	x.mu.RUnlock()

	return Verdict{Allowed: used < limit, Used: used, Limit: limit}
}

func (x *Ledger) Record(userID int64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	r, ok := x.records[userID]
	if !ok {
		r = &record{}
		x.records[userID] = r
	}
	r.daily++
	r.lifetime++
}

func (x *Ledger) Usage(userID int64) (lifetime int, daily int) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if r, ok := x.records[userID]; ok {
		return r.lifetime, r.daily
	}
	return 0, 0
}

// Top lists the n users with the most lifetime messages, ties broken by user id.
func (x *Ledger) Top(n int) []Standing {
	x.mu.RLock()
	standings := make([]Standing, 0, len(x.records))
	for userID, r := range x.records {
		standings = append(standings, Standing{UserID: userID, Lifetime: r.lifetime, Daily: r.daily})
	}
	x.mu.RUnlock()

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Lifetime != standings[j].Lifetime {
			return standings[i].Lifetime > standings[j].Lifetime
		}
		return standings[i].UserID < standings[j].UserID
	})

	if n >= 0 && n < len(standings) {
		standings = standings[:n]
	}
	return standings
}

func (x *Ledger) LastReset() clock.Day {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.lastReset
}

// Totals returns how many users have records and the sum of their lifetime counters.
func (x *Ledger) Totals() (users int, lifetime int) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for _, r := range x.records {
		lifetime += r.lifetime
	}
	return len(x.records), lifetime
}
