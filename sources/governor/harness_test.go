package governor

import (
	"context"
	"errors"
	"relaybot/sources/access"
	"relaybot/sources/artificial"
	"relaybot/sources/clock"
	"relaybot/sources/configuration"
	"relaybot/sources/features"
	"relaybot/sources/memory"
	"relaybot/sources/metrics"
	"relaybot/sources/quota"
	"relaybot/sources/repository"
	"relaybot/sources/throttler"
	"relaybot/sources/tracing"
	"sync"
	"testing"
	"time"
)

const adminID int64 = 1000

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type completerFunc func(ctx context.Context, system string, turns []memory.Turn) (string, error)

type fakeCompleter struct {
	mu      sync.Mutex
	calls   int
	systems []string
	respond completerFunc
}

func (f *fakeCompleter) Complete(ctx context.Context, log *tracing.Logger, system string, turns []memory.Turn) (string, error) {
	f.mu.Lock()
	f.calls++
	f.systems = append(f.systems, system)
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return "reply to " + turns[len(turns)-1].Content, nil
	}
	return respond(ctx, system, turns)
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeAnnouncer struct {
	mu       sync.Mutex
	mirrored []Inbound
	banned   []int64
	unbanned []int64
	granted  []int64
	err      error
}

func (f *fakeAnnouncer) Mirror(ctx context.Context, in Inbound) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mirrored = append(f.mirrored, in)
	return f.err
}

func (f *fakeAnnouncer) Banned(ctx context.Context, userID int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banned = append(f.banned, userID)
	return f.err
}

func (f *fakeAnnouncer) Unbanned(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unbanned = append(f.unbanned, userID)
	return f.err
}

func (f *fakeAnnouncer) PremiumGranted(ctx context.Context, userID int64, tier access.Tier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.granted = append(f.granted, userID)
	return f.err
}

type silentNotifier struct{}

func (silentNotifier) PaymentAcknowledged(context.Context, int64, access.Package) error {
	return nil
}

func (silentNotifier) ReceiptReceived(context.Context, int64, access.Package, string) error {
	return nil
}

type harness struct {
	clock     *manualClock
	registry  *access.Registry
	ledger    *quota.Ledger
	throttler *throttler.Throttler
	memory    *memory.LocalStore
	completer *fakeCompleter
	announcer *fakeAnnouncer
	governor  *Governor
	admin     *AdminConsole
	log       *tracing.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	config := &configuration.Config{
		Packages: map[string]configuration.PackageConfig{
			"basic": {DailyLimit: 100, Price: 15000, DurationDays: 30},
			"pro":   {DailyLimit: 300, Price: 30000},
		},
	}
	config.Telegram.AdminID = adminID
	config.AI.SystemPrompt = "You are a helpful bot. The current year is {{year}}."
	config.AI.Model = "gpt-4o-mini"
	config.AI.Timeout = time.Second
	config.Governance = configuration.GovernanceConfig{
		TimeZone:          "UTC",
		PerMinute:         3,
		DefaultDailyLimit: 30,
		StandardHistory:   20,
		PremiumHistory:    50,
	}
	config.Payments.Currency = "UZS"

	log := tracing.NewDiscardLogger()
	h := &harness{
		clock:     &manualClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
		memory:    memory.NewLocalStore(),
		completer: &fakeCompleter{},
		announcer: &fakeAnnouncer{},
		log:       log,
	}

	h.registry = access.NewRegistry(access.NewCatalog(config), access.NewAccessConfig(config), silentNotifier{}, log)
	h.ledger = quota.NewLedger(clock.NewCalendar(time.UTC), h.registry)
	h.throttler = throttler.NewThrottler(throttler.NewThrottlerConfig(config))
	h.governor = NewGovernor(
		NewGovernorConfig(config),
		h.clock,
		h.registry,
		h.ledger,
		h.throttler,
		h.memory,
		h.completer,
		h.announcer,
		repository.NewJournalRepository(nil),
		features.NewStaticFeatureManager(log),
		metrics.NewMetricsService(log),
	)
	h.admin = NewAdminConsole(h.governor)
	return h
}

func (h *harness) send(userID int64, text string) Outcome {
	return h.governor.Handle(context.Background(), h.log, Inbound{UserID: userID, ChatID: userID, Text: text})
}

// sendSpaced keeps three messages per minute, which never trips the rate gate.
func (h *harness) sendSpaced(userID int64, text string) Outcome {
	h.clock.Advance(21 * time.Second)
	return h.send(userID, text)
}

func (h *harness) turns(userID int64) []memory.Turn {
	turns, _ := h.memory.Snapshot(context.Background(), userID)
	return turns
}

var errProviderDown = &artificial.ProviderError{Kind: artificial.Transient, Provider: "openai", StatusCode: 503, Err: errors.New("service unavailable")}
