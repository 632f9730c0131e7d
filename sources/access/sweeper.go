package access

import (
	"context"
	"relaybot/sources/clock"
	"relaybot/sources/tracing"
	"time"

	"go.uber.org/fx"
)

type Sweeper struct {
	registry *Registry
	clock    clock.Clock
	interval time.Duration
	log      *tracing.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSweeper(registry *Registry, clock clock.Clock, config *AccessConfig, log *tracing.Logger) *Sweeper {
	return &Sweeper{registry: registry, clock: clock, interval: config.SweepInterval, log: log}
}

func (x *Sweeper) Start() {
	if x.interval <= 0 {
		x.log.I("Pending payment sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	x.cancel = cancel
	x.done = make(chan struct{})

	go x.loop(ctx)
}

func (x *Sweeper) Stop() {
	if x.cancel == nil {
		return
	}
	x.cancel()
	<-x.done
}

func (x *Sweeper) loop(ctx context.Context) {
	defer close(x.done)

	ticker := time.NewTicker(x.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			x.SweepOnce()
		}
	}
}

func (x *Sweeper) SweepOnce() int {
	var dropped int
	tracing.ReportExecution(x.log, func() {
		dropped = x.registry.Sweep(x.clock.Now())
	}, func(l *tracing.Logger) {
		if dropped > 0 {
			l.I("Dropped stale pending payments", "dropped", dropped)
		}
	})
	return dropped
}

func RunSweeper(lc fx.Lifecycle, sweeper *Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
