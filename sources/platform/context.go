package platform

import (
	"context"
	"time"
)

// storeTimeout bounds a single Redis or PostgreSQL round trip. CONTEXT_TIMEOUT overrides it.
var storeTimeout = GetAsDuration("CONTEXT_TIMEOUT", "5s")

func ContextTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// ContextTimeoutVal falls back to the store timeout for non-positive values.
func ContextTimeoutVal(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = storeTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
