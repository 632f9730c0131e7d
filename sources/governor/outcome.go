package governor

import (
	"fmt"
	"relaybot/sources/access"
)

type RejectionKind int

const (
	Banned RejectionKind = iota + 1
	Throttled
	QuotaExceeded
)

func (k RejectionKind) String() string {
	switch k {
	case Banned:
		return "banned"
	case Throttled:
		return "throttled"
	case QuotaExceeded:
		return "quota_exceeded"
	default:
		return "unknown"
	}
}

// Rejection is the terminal answer of an admission gate.
type Rejection struct {
	Kind    RejectionKind
	Reason  string
	Used    int
	Limit   int
	Premium bool
}

func (r *Rejection) Error() string {
	switch r.Kind {
	case Banned:
		return fmt.Sprintf("admission rejected: banned (%s)", r.Reason)
	case QuotaExceeded:
		return fmt.Sprintf("admission rejected: quota exceeded (%d/%d)", r.Used, r.Limit)
	default:
		return "admission rejected: " + r.Kind.String()
	}
}

type OutcomeKind int

const (
	Replied OutcomeKind = iota
	Rejected
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Replied:
		return "replied"
	case Rejected:
		return "rejected"
	default:
		return "failed"
	}
}

type Outcome struct {
	Kind      OutcomeKind
	Reply     string
	Rejection *Rejection
	Tier      access.Tier
	Err       error
}
