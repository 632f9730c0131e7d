package telegram

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/governor"
	"relaybot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

var Module = fx.Module("telegram",
	fx.Provide(
		NewBotConfig,
		NewDiplomatConfig,
		NewPollerConfig,
		NewHandlerConfig,
		NewBotAPI,
		func(bot *tgbotapi.BotAPI) Sender { return bot },
		func(bot *tgbotapi.BotAPI) UpdateSource { return bot },
		NewDiplomat,
		NewTypingManager,
		NewAdminNotifier,
		func(n *AdminNotifier) access.Notifier { return n },
		func(n *AdminNotifier) governor.Announcer { return n },
		NewTelegramHandler,
		NewPoller,
	),

	fx.Invoke(func(lc fx.Lifecycle, poller *Poller, log *tracing.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				poller.Start()
				log.I("Telegram poller started")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				err := poller.Stop(ctx)
				log.I("Telegram poller stopped")
				return err
			},
		})
	}),
)
