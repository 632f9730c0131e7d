package governor

import (
	"relaybot/sources/access"
	"relaybot/sources/quota"
	"relaybot/sources/throttler"
	"time"
)

// Gate is one admission predicate. Check must not mutate anything.
type Gate struct {
	Name  string
	Check func(userID int64, now time.Time) *Rejection
}

func BanGate(registry *access.Registry) Gate {
	return Gate{Name: "ban", Check: func(userID int64, now time.Time) *Rejection {
		if reason, banned := registry.IsBanned(userID); banned {
			return &Rejection{Kind: Banned, Reason: reason}
		}
		return nil
	}}
}

func RateGate(throttler *throttler.Throttler) Gate {
	return Gate{Name: "rate", Check: func(userID int64, now time.Time) *Rejection {
		if !throttler.Allow(userID, now) {
			return &Rejection{Kind: Throttled}
		}
		return nil
	}}
}

func QuotaGate(ledger *quota.Ledger, registry *access.Registry) Gate {
	return Gate{Name: "quota", Check: func(userID int64, now time.Time) *Rejection {
		verdict := ledger.Check(userID, now)
		if verdict.Allowed {
			return nil
		}
		return &Rejection{
			Kind:    QuotaExceeded,
			Used:    verdict.Used,
			Limit:   verdict.Limit,
			Premium: registry.Tier(userID, now).Premium,
		}
	}}
}

// DefaultGates evaluates bans first, then the rate limit, then the daily quota.
func DefaultGates(registry *access.Registry, throttler *throttler.Throttler, ledger *quota.Ledger) []Gate {
	return []Gate{
		BanGate(registry),
		RateGate(throttler),
		QuotaGate(ledger, registry),
	}
}

func evaluate(gates []Gate, userID int64, now time.Time) (string, *Rejection) {
	for _, gate := range gates {
		if rejection := gate.Check(userID, now); rejection != nil {
			return gate.Name, rejection
		}
	}
	return "", nil
}
