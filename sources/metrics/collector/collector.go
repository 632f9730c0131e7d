package collector

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/metrics"
	"relaybot/sources/quota"
	"relaybot/sources/tracing"
	"time"

	"go.uber.org/fx"
)

type StatsCollector struct {
	log      *tracing.Logger
	metrics  *metrics.MetricsService
	registry *access.Registry
	ledger   *quota.Ledger
	interval time.Duration
}

func NewStatsCollector(
	lc fx.Lifecycle,
	log *tracing.Logger,
	metrics *metrics.MetricsService,
	registry *access.Registry,
	ledger *quota.Ledger,
) *StatsCollector {
	s := &StatsCollector{
		log:      log,
		metrics:  metrics,
		registry: registry,
		ledger:   ledger,
		interval: 1 * time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})

	return s
}

func (s *StatsCollector) start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.collectStats()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.collectStats()
		}
	}
}

func (s *StatsCollector) collectStats() {
	stats := s.registry.Stats()
	s.metrics.SetBannedUsers(float64(stats.Banned))
	s.metrics.SetPremiumUsers(float64(stats.Premium))
	s.metrics.SetPendingPayments(float64(stats.Pending))

	users, lifetime := s.ledger.Totals()
	s.metrics.SetTrackedUsers(float64(users))
	s.metrics.SetLifetimeMessages(float64(lifetime))

	s.log.D("Governance stats collected", "tracked_users", users, "lifetime_messages", lifetime, "banned", stats.Banned, "premium", stats.Premium, "pending", stats.Pending)
}
