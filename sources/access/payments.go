package access

import (
	"context"
	"relaybot/sources/tracing"
	"time"
)

type Checkout struct {
	Package      Package
	Price        int64
	Currency     string
	Instructions string
	ExpiresAt    time.Time
}

type PendingStatus struct {
	Package      string
	PhotoPending bool
	CreatedAt    time.Time
}

// SelectPackage opens a checkout for the user, replacing any previous one.
func (x *Registry) SelectPackage(userID int64, name string, now time.Time) (Checkout, error) {
	pkg, ok := x.catalog.Lookup(name)
	if !ok {
		return Checkout{}, ErrUnknownPackage
	}

	x.mu.Lock()
	x.pending[userID] = &pendingPayment{pkg: pkg.Name, photoPending: true, createdAt: now}
	x.mu.Unlock()

	checkout := Checkout{
		Package:      pkg,
		Price:        pkg.Price,
		Currency:     x.config.Currency,
		Instructions: x.config.Instructions,
	}
	if x.config.PendingTTL > 0 {
		checkout.ExpiresAt = now.Add(x.config.PendingTTL)
	}
	return checkout, nil
}

// AcknowledgePayment tells the administrator the user claims to have paid.
func (x *Registry) AcknowledgePayment(ctx context.Context, userID int64) error {
	x.mu.RLock()
	pending, ok := x.pending[userID]
	var name string
	if ok {
		name = pending.pkg
	}
	x.mu.RUnlock()

	if !ok {
		return ErrNoPendingPayment
	}

	pkg, _ := x.catalog.Lookup(name)
	if err := x.notifier.PaymentAcknowledged(ctx, userID, pkg); err != nil {
		x.log.W("Failed to notify admin about payment", tracing.UserId, userID, tracing.PackageName, name, tracing.InnerError, err)
	}
	return nil
}

// ReceiveReceipt forwards the receipt photo to the administrator. Premium is not granted here.
func (x *Registry) ReceiveReceipt(ctx context.Context, userID int64, photoRef string) error {
	x.mu.Lock()
	pending, ok := x.pending[userID]
	if !ok || !pending.photoPending {
		x.mu.Unlock()
		return ErrNotExpectingReceipt
	}
	pending.photoPending = false
	name := pending.pkg
	x.mu.Unlock()

	pkg, _ := x.catalog.Lookup(name)
	if err := x.notifier.ReceiptReceived(ctx, userID, pkg, photoRef); err != nil {
		x.log.W("Failed to forward receipt to admin", tracing.UserId, userID, tracing.PackageName, name, tracing.InnerError, err)
	}
	return nil
}

func (x *Registry) CancelPayment(userID int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.pending[userID]; !ok {
		return false
	}
	delete(x.pending, userID)
	return true
}

func (x *Registry) Pending(userID int64) (PendingStatus, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	pending, ok := x.pending[userID]
	if !ok {
		return PendingStatus{}, false
	}
	return PendingStatus{Package: pending.pkg, PhotoPending: pending.photoPending, CreatedAt: pending.createdAt}, true
}

// Sweep drops checkouts older than the pending TTL and returns how many were dropped.
func (x *Registry) Sweep(now time.Time) int {
	if x.config.PendingTTL <= 0 {
		return 0
	}

	cutoff := now.Add(-x.config.PendingTTL)

	x.mu.Lock()
	defer x.mu.Unlock()

	dropped := 0
	for userID, pending := range x.pending {
		if !pending.createdAt.After(cutoff) {
			delete(x.pending, userID)
			dropped++
		}
	}
	return dropped
}
