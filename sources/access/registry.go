package access

import (
	"context"
	"errors"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"
	"sort"
	"sync"
	"time"
)

var (
	ErrInvalidPackage      = errors.New("invalid package")
	ErrUnknownPackage      = errors.New("unknown package")
	ErrNoPendingPayment    = errors.New("no pending payment")
	ErrNotExpectingReceipt = errors.New("not expecting a receipt")
)

// Notifier delivers checkout events to the administrator.
type Notifier interface {
	PaymentAcknowledged(ctx context.Context, userID int64, pkg Package) error
	ReceiptReceived(ctx context.Context, userID int64, pkg Package, photoRef string) error
}

type Tier struct {
	Package    string
	Premium    bool
	DailyLimit int
	MaxHistory int
	ExpiresAt  time.Time
}

type Ban struct {
	UserID int64
	Reason string
}

type Assignment struct {
	Package   string
	GrantedAt time.Time
	ExpiresAt time.Time
}

func (a Assignment) expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

type pendingPayment struct {
	pkg          string
	photoPending bool
	createdAt    time.Time
}

type Registry struct {
	mu       sync.RWMutex
	catalog  *Catalog
	config   *AccessConfig
	notifier Notifier
	log      *tracing.Logger

	bans    map[int64]string
	premium map[int64]Assignment
	pending map[int64]*pendingPayment
}

func NewRegistry(catalog *Catalog, config *AccessConfig, notifier Notifier, log *tracing.Logger) *Registry {
	return &Registry{
		catalog:  catalog,
		config:   config,
		notifier: notifier,
		log:      log,
		bans:     make(map[int64]string),
		premium:  make(map[int64]Assignment),
		pending:  make(map[int64]*pendingPayment),
	}
}

func (x *Registry) Catalog() *Catalog {
	return x.catalog
}

func (x *Registry) Ban(userID int64, reason string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.bans[userID] = reason
}

// Unban reports false when the user was not banned.
func (x *Registry) Unban(userID int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.bans[userID]; !ok {
		return false
	}
	delete(x.bans, userID)
	return true
}

func (x *Registry) IsBanned(userID int64) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	reason, ok := x.bans[userID]
	return reason, ok
}

func (x *Registry) Bans() []Ban {
	x.mu.RLock()
	bans := make([]Ban, 0, len(x.bans))
	for userID, reason := range x.bans {
		bans = append(bans, Ban{UserID: userID, Reason: reason})
	}
	x.mu.RUnlock()

	sort.Slice(bans, func(i, j int) bool { return bans[i].UserID < bans[j].UserID })
	return bans
}

// GrantPremium assigns the package and drops whatever checkout the user had open.
func (x *Registry) GrantPremium(userID int64, name string, now time.Time) (Assignment, error) {
	pkg, ok := x.catalog.Lookup(name)
	if !ok {
		return Assignment{}, ErrInvalidPackage
	}

	assignment := Assignment{Package: pkg.Name, GrantedAt: now}
	if pkg.Duration > 0 {
		assignment.ExpiresAt = now.Add(pkg.Duration)
	}

	x.mu.Lock()
	x.premium[userID] = assignment
	delete(x.pending, userID)
	x.mu.Unlock()

	return assignment, nil
}

func (x *Registry) Revoke(userID int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.premium[userID]; !ok {
		return false
	}
	delete(x.premium, userID)
	return true
}

// Tier resolves the governance profile at now. An expired assignment is dropped here.
func (x *Registry) Tier(userID int64, now time.Time) Tier {
	x.mu.RLock()
	assignment, ok := x.premium[userID]
	x.mu.RUnlock()

	if ok && assignment.expired(now) {
		x.mu.Lock()
		if current, still := x.premium[userID]; still && current.expired(now) {
			delete(x.premium, userID)
			x.log.I("Premium assignment expired", tracing.UserId, userID, tracing.PackageName, current.Package)
		}
		x.mu.Unlock()
		ok = false
	}

	if ok {
		if pkg, known := x.catalog.Lookup(assignment.Package); known {
			return Tier{
				Package:    pkg.Name,
				Premium:    true,
				DailyLimit: pkg.DailyLimit,
				MaxHistory: x.config.PremiumHistory,
				ExpiresAt:  assignment.ExpiresAt,
			}
		}
	}

	return Tier{
		Package:    platform.TierStandard,
		DailyLimit: x.config.DefaultDailyLimit,
		MaxHistory: x.config.StandardHistory,
	}
}

func (x *Registry) DailyLimit(userID int64, now time.Time) int {
	return x.Tier(userID, now).DailyLimit
}

func (x *Registry) MaxHistory(userID int64, now time.Time) int {
	return x.Tier(userID, now).MaxHistory
}

type Stats struct {
	Banned  int
	Premium int
	Pending int
}

func (x *Registry) Stats() Stats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return Stats{Banned: len(x.bans), Premium: len(x.premium), Pending: len(x.pending)}
}
