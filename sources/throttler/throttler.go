package throttler

import (
	"relaybot/sources/clock"
	"sync"
	"time"
)

type Throttler struct {
	mu      sync.Mutex
	config  *ThrottlerConfig
	windows map[int64][]time.Time
}

func NewThrottler(config *ThrottlerConfig) *Throttler {
	return &Throttler{config: config, windows: make(map[int64][]time.Time)}
}

// Allow evicts timestamps that left the window and reports whether one more request fits.
// It never records the request.
func (x *Throttler) Allow(userID int64, now time.Time) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	window := clock.Within(x.windows[userID], now, x.config.Window)
	if len(window) == 0 {
		delete(x.windows, userID)
	} else {
		x.windows[userID] = window
	}

	return len(window) < x.config.Limit
}

func (x *Throttler) Record(userID int64, now time.Time) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.windows[userID] = append(x.windows[userID], now)
}

// Pending returns how many requests of the user are still inside the window.
func (x *Throttler) Pending(userID int64, now time.Time) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	count := 0
	cutoff := now.Add(-x.config.Window)
	for _, ts := range x.windows[userID] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}
