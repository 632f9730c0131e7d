package main

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/artificial"
	"relaybot/sources/clock"
	"relaybot/sources/configuration"
	"relaybot/sources/external"
	"relaybot/sources/features"
	"relaybot/sources/governor"
	"relaybot/sources/localization"
	"relaybot/sources/memory"
	"relaybot/sources/metrics"
	"relaybot/sources/metrics/collector"
	"relaybot/sources/network"
	"relaybot/sources/persistence"
	"relaybot/sources/platform"
	"relaybot/sources/quota"
	"relaybot/sources/repository"
	"relaybot/sources/telegram"
	"relaybot/sources/throttler"
	"relaybot/sources/tracing"
	"time"

	"go.uber.org/fx"
)

var (
	version   = "0.0.0"
	buildTime = "1970-01-01"
)

func main() {
	platform.SetAppManifest(version, buildTime, time.Now())

	fx.New(
		tracing.Module,
		configuration.Module,
		clock.Module,
		metrics.Module,
		external.Module,
		network.Module,
		persistence.Module,
		repository.Module,
		features.Module,
		localization.Module,
		throttler.Module,
		quota.Module,
		access.Module,
		memory.Module,
		artificial.Module,
		governor.Module,
		telegram.Module,
		collector.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *tracing.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.I("Relay bot started successfully", "version", version, "build_time", buildTime)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("Relay bot stopped", "version", version, "build_time", buildTime, "uptime", platform.GetAppUptime().String())
					return nil
				},
			})
		}),
	).Run()
}
