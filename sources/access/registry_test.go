package access

import (
	"context"
	"errors"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu           sync.Mutex
	acknowledged []int64
	receipts     []string
	err          error
}

func (n *recordingNotifier) PaymentAcknowledged(ctx context.Context, userID int64, pkg Package) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.acknowledged = append(n.acknowledged, userID)
	return n.err
}

func (n *recordingNotifier) ReceiptReceived(ctx context.Context, userID int64, pkg Package, photoRef string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receipts = append(n.receipts, pkg.Name+":"+photoRef)
	return n.err
}

var epoch = time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)

func newRegistry(notifier Notifier) *Registry {
	catalog := newCatalog(map[string]Package{
		"basic":   {Name: "basic", DailyLimit: 100, Price: 15000, Duration: 30 * 24 * time.Hour},
		"pro":     {Name: "pro", DailyLimit: 300, Price: 30000},
		"starter": {Name: "starter", DailyLimit: 50, Price: 5000},
	})
	config := &AccessConfig{
		DefaultDailyLimit: 30,
		StandardHistory:   20,
		PremiumHistory:    50,
		Instructions:      "Pay to card 8600 0000 0000 0000",
		Currency:          "UZS",
		PendingTTL:        24 * time.Hour,
		SweepInterval:     10 * time.Minute,
	}
	return NewRegistry(catalog, config, notifier, tracing.NewDiscardLogger())
}

func TestCatalogOrderedByPrice(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})
	assert.Equal(t, []string{"starter", "basic", "pro"}, registry.Catalog().Names())

	_, ok := registry.Catalog().Lookup("gold")
	assert.False(t, ok)
}

func TestBanLifecycle(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	_, banned := registry.IsBanned(5)
	assert.False(t, banned)
	assert.False(t, registry.Unban(5))

	registry.Ban(5, "spam")
	reason, banned := registry.IsBanned(5)
	assert.True(t, banned)
	assert.Equal(t, "spam", reason)
	assert.Equal(t, []Ban{{UserID: 5, Reason: "spam"}}, registry.Bans())

	assert.True(t, registry.Unban(5))
	_, banned = registry.IsBanned(5)
	assert.False(t, banned)
	assert.Empty(t, registry.Bans())
}

func TestStandardTier(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	tier := registry.Tier(1, epoch)
	assert.Equal(t, platform.TierStandard, tier.Package)
	assert.False(t, tier.Premium)
	assert.Equal(t, 30, tier.DailyLimit)
	assert.Equal(t, 20, tier.MaxHistory)
	assert.Equal(t, 30, registry.DailyLimit(1, epoch))
}

func TestGrantPremium(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	_, err := registry.GrantPremium(1, "gold", epoch)
	assert.ErrorIs(t, err, ErrInvalidPackage)
	assert.False(t, registry.Tier(1, epoch).Premium)

	_, err = registry.SelectPackage(1, "pro", epoch)
	require.NoError(t, err)

	assignment, err := registry.GrantPremium(1, "pro", epoch)
	require.NoError(t, err)
	assert.True(t, assignment.ExpiresAt.IsZero())

	tier := registry.Tier(1, epoch.Add(365*24*time.Hour))
	assert.True(t, tier.Premium)
	assert.Equal(t, "pro", tier.Package)
	assert.Equal(t, 300, tier.DailyLimit)
	assert.Equal(t, 50, tier.MaxHistory)

	_, pending := registry.Pending(1)
	assert.False(t, pending, "grant clears the checkout")
	assert.ErrorIs(t, registry.ReceiveReceipt(context.Background(), 1, "photo"), ErrNotExpectingReceipt)
}

func TestPremiumExpires(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	assignment, err := registry.GrantPremium(2, "basic", epoch)
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(30*24*time.Hour), assignment.ExpiresAt)

	assert.True(t, registry.Tier(2, epoch.Add(29*24*time.Hour)).Premium)

	tier := registry.Tier(2, epoch.Add(30*24*time.Hour))
	assert.False(t, tier.Premium)
	assert.Equal(t, 30, tier.DailyLimit)
	assert.False(t, registry.Revoke(2), "expired assignment is dropped")
}

func TestRevoke(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	assert.False(t, registry.Revoke(3))
	_, err := registry.GrantPremium(3, "pro", epoch)
	require.NoError(t, err)

	assert.True(t, registry.Revoke(3))
	assert.Equal(t, 20, registry.MaxHistory(3, epoch))
}

func TestSelectPackage(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	_, err := registry.SelectPackage(1, "gold", epoch)
	assert.ErrorIs(t, err, ErrUnknownPackage)

	checkout, err := registry.SelectPackage(1, "basic", epoch)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), checkout.Price)
	assert.Equal(t, "UZS", checkout.Currency)
	assert.Contains(t, checkout.Instructions, "8600")
	assert.Equal(t, epoch.Add(24*time.Hour), checkout.ExpiresAt)

	status, ok := registry.Pending(1)
	require.True(t, ok)
	assert.Equal(t, "basic", status.Package)
	assert.True(t, status.PhotoPending)
}

func TestAcknowledgePayment(t *testing.T) {
	notifier := &recordingNotifier{}
	registry := newRegistry(notifier)
	ctx := context.Background()

	assert.ErrorIs(t, registry.AcknowledgePayment(ctx, 1), ErrNoPendingPayment)

	_, err := registry.SelectPackage(1, "basic", epoch)
	require.NoError(t, err)
	require.NoError(t, registry.AcknowledgePayment(ctx, 1))

	assert.Equal(t, []int64{1}, notifier.acknowledged)
	assert.False(t, registry.Tier(1, epoch).Premium, "acknowledging does not grant")
}

func TestReceiveReceiptOnlyWhenPhotoPending(t *testing.T) {
	notifier := &recordingNotifier{}
	registry := newRegistry(notifier)
	ctx := context.Background()

	assert.ErrorIs(t, registry.ReceiveReceipt(ctx, 1, "photo-0"), ErrNotExpectingReceipt)

	_, err := registry.SelectPackage(1, "pro", epoch)
	require.NoError(t, err)

	require.NoError(t, registry.ReceiveReceipt(ctx, 1, "photo-1"))
	assert.ErrorIs(t, registry.ReceiveReceipt(ctx, 1, "photo-2"), ErrNotExpectingReceipt)
	assert.Equal(t, []string{"pro:photo-1"}, notifier.receipts)

	status, ok := registry.Pending(1)
	require.True(t, ok, "checkout stays open until the admin grants")
	assert.False(t, status.PhotoPending)
	assert.False(t, registry.Tier(1, epoch).Premium)
}

func TestNotifierFailuresAreSwallowed(t *testing.T) {
	registry := newRegistry(&recordingNotifier{err: errors.New("bot was blocked by the user")})
	ctx := context.Background()

	_, err := registry.SelectPackage(1, "pro", epoch)
	require.NoError(t, err)

	assert.NoError(t, registry.AcknowledgePayment(ctx, 1))
	assert.NoError(t, registry.ReceiveReceipt(ctx, 1, "photo"))
}

func TestCancelPayment(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	assert.False(t, registry.CancelPayment(1))
	_, err := registry.SelectPackage(1, "pro", epoch)
	require.NoError(t, err)

	assert.True(t, registry.CancelPayment(1))
	assert.ErrorIs(t, registry.AcknowledgePayment(context.Background(), 1), ErrNoPendingPayment)
}

func TestSweepDropsStaleCheckouts(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})

	_, err := registry.SelectPackage(1, "pro", epoch)
	require.NoError(t, err)
	_, err = registry.SelectPackage(2, "basic", epoch.Add(12*time.Hour))
	require.NoError(t, err)

	assert.Zero(t, registry.Sweep(epoch.Add(23*time.Hour)))
	assert.Equal(t, 1, registry.Sweep(epoch.Add(24*time.Hour)))

	_, ok := registry.Pending(1)
	assert.False(t, ok)
	_, ok = registry.Pending(2)
	assert.True(t, ok)
}

type frozenClock struct{ now time.Time }

func (c frozenClock) Now() time.Time { return c.now }

func TestSweeperUsesClock(t *testing.T) {
	registry := newRegistry(&recordingNotifier{})
	_, err := registry.SelectPackage(1, "pro", epoch)
	require.NoError(t, err)

	sweeper := NewSweeper(registry, frozenClock{now: epoch.Add(48 * time.Hour)}, registry.config, tracing.NewDiscardLogger())
	assert.Equal(t, 1, sweeper.SweepOnce())

	sweeper.Start()
	sweeper.Stop()
}
