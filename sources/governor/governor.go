package governor

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/artificial"
	"relaybot/sources/clock"
	"relaybot/sources/features"
	"relaybot/sources/memory"
	"relaybot/sources/metrics"
	"relaybot/sources/platform"
	"relaybot/sources/quota"
	"relaybot/sources/repository"
	"relaybot/sources/throttler"
	"relaybot/sources/tracing"
	"time"
)

type Inbound struct {
	UserID   int64
	ChatID   int64
	UserName string
	Text     string
}

// Announcer carries messages the governor sends on its own initiative. Every failure
// is logged by the governor and otherwise ignored.
type Announcer interface {
	Mirror(ctx context.Context, in Inbound) error
	Banned(ctx context.Context, userID int64, reason string) error
	Unbanned(ctx context.Context, userID int64) error
	PremiumGranted(ctx context.Context, userID int64, tier access.Tier) error
}

type UserStatus struct {
	UserID    int64
	Tier      access.Tier
	Lifetime  int
	Daily     int
	Banned    bool
	BanReason string
	Pending   *access.PendingStatus
}

type Governor struct {
	config    *GovernorConfig
	clock     clock.Clock
	registry  *access.Registry
	ledger    *quota.Ledger
	throttler *throttler.Throttler
	memory    memory.Store
	completer artificial.Completer
	announcer Announcer
	journal   *repository.JournalRepository
	features  *features.FeatureManager
	metrics   *metrics.MetricsService
	gates     []Gate
	locks     *platform.KeyedMutex
}

func NewGovernor(
	config *GovernorConfig,
	clock clock.Clock,
	registry *access.Registry,
	ledger *quota.Ledger,
	throttler *throttler.Throttler,
	memory memory.Store,
	completer artificial.Completer,
	announcer Announcer,
	journal *repository.JournalRepository,
	features *features.FeatureManager,
	metrics *metrics.MetricsService,
) *Governor {
	return &Governor{
		config:    config,
		clock:     clock,
		registry:  registry,
		ledger:    ledger,
		throttler: throttler,
		memory:    memory,
		completer: completer,
		announcer: announcer,
		journal:   journal,
		features:  features,
		metrics:   metrics,
		gates:     DefaultGates(registry, throttler, ledger),
		locks:     platform.NewKeyedMutex(),
	}
}

// rollover is the only place the daily counters are reset.
func (x *Governor) rollover(now time.Time) clock.Day {
	return x.ledger.Rollover(now)
}

// Handle runs one inbound text through the gate chain and, when admitted, through the
// completion provider. Messages of the same user are processed one at a time.
func (x *Governor) Handle(ctx context.Context, log *tracing.Logger, in Inbound) Outcome {
	unlock := x.locks.Lock(in.UserID)
	defer unlock()

	started := time.Now()
	defer func() { x.metrics.RecordMessageProcessingDuration(time.Since(started)) }()

	now := x.clock.Now()
	day := x.rollover(now)
	log = log.With(tracing.UserId, in.UserID, tracing.StatisticsDay, day.String())

	x.mirror(ctx, log, in)

	tier := x.registry.Tier(in.UserID, now)
	if gate, rejection := evaluate(x.gates, in.UserID, now); rejection != nil {
		log.I("Message rejected", tracing.Gate, gate, tracing.Tier, tier.Package)
		x.metrics.RecordRejection(gate)
		x.metrics.RecordAdmission(Rejected.String())
		return Outcome{Kind: Rejected, Rejection: rejection, Tier: tier}
	}

	x.throttler.Record(in.UserID, now)
	x.ledger.Record(in.UserID)

	lifetime, daily := x.ledger.Usage(in.UserID)
	log = log.With(tracing.Tier, tier.Package, tracing.DailyUsed, daily, tracing.DailyLimit, tier.DailyLimit)
	log.I("Message admitted", "lifetime", lifetime)

	if err := x.memory.Append(ctx, in.UserID, memory.UserTurn(in.Text)); err != nil {
		return x.fail(log, tier, err)
	}

	turns, err := x.memory.Snapshot(ctx, in.UserID)
	if err != nil {
		return x.fail(log, tier, err)
	}

	system := artificial.SystemPrompt(x.config.SystemPrompt, now)

	completionCtx, cancel := context.WithTimeout(ctx, x.config.completionTimeout())
	reply, err := x.completer.Complete(completionCtx, log, system, turns)
	cancel()
	if err != nil {
		return x.fail(log, tier, err)
	}

	if err := x.memory.Append(ctx, in.UserID, memory.AssistantTurn(reply)); err != nil {
		log.E("Failed to store assistant turn", tracing.InnerError, err)
	}

	bound := x.registry.Tier(in.UserID, x.clock.Now())
	if err := x.memory.Trim(ctx, in.UserID, bound.MaxHistory); err != nil {
		log.E("Failed to trim conversation", tracing.InnerError, err)
	}

	x.journalExchange(log, in, bound, reply)
	x.metrics.RecordAdmission(Replied.String())

	return Outcome{Kind: Replied, Reply: reply, Tier: bound}
}

func (x *Governor) fail(log *tracing.Logger, tier access.Tier, err error) Outcome {
	log.E("Message failed", tracing.AiFailure, artificial.KindOf(err).String(), tracing.InnerError, err)
	x.metrics.RecordAdmission(Failed.String())
	return Outcome{Kind: Failed, Tier: tier, Err: err}
}

func (x *Governor) mirror(ctx context.Context, log *tracing.Logger, in Inbound) {
	if in.UserID == x.config.AdminID || !x.features.IsEnabledDefault(features.FeatureAdminMirror, true) {
		return
	}
	if err := x.announcer.Mirror(ctx, in); err != nil {
		log.W("Failed to mirror message to admin", tracing.InnerError, err)
	}
}

func (x *Governor) journalExchange(log *tracing.Logger, in Inbound, tier access.Tier, reply string) {
	if !x.journal.Enabled() || !x.features.IsEnabledDefault(features.FeatureExchangeJournaling, true) {
		return
	}
	_ = x.journal.RecordExchange(log, repository.Exchange{
		UserID:   in.UserID,
		ChatID:   in.ChatID,
		Tier:     tier.Package,
		Model:    x.config.Model,
		Question: in.Text,
		Answer:   reply,
	})
}

// Status reports what the governance layer knows about the user right now.
func (x *Governor) Status(userID int64) UserStatus {
	now := x.clock.Now()
	x.rollover(now)

	lifetime, daily := x.ledger.Usage(userID)
	reason, banned := x.registry.IsBanned(userID)
	status := UserStatus{
		UserID:    userID,
		Tier:      x.registry.Tier(userID, now),
		Lifetime:  lifetime,
		Daily:     daily,
		Banned:    banned,
		BanReason: reason,
	}
	if pending, ok := x.registry.Pending(userID); ok {
		status.Pending = &pending
	}
	return status
}

func (x *Governor) IsAdmin(userID int64) bool {
	return userID == x.config.AdminID
}
