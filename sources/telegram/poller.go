package telegram

import (
	"context"
	"relaybot/sources/metrics"
	"relaybot/sources/tracing"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

// Poller reads updates and hands each one to the handler on a bounded worker pool.
type Poller struct {
	source   UpdateSource
	handler  *TelegramHandler
	config   *PollerConfig
	metrics  *metrics.MetricsService
	log      *tracing.Logger
	stopping chan struct{}
	done     chan struct{}
	cancel   context.CancelFunc
	once     sync.Once
}

func NewPoller(source UpdateSource, handler *TelegramHandler, config *PollerConfig, metrics *metrics.MetricsService, log *tracing.Logger) *Poller {
	return &Poller{
		source:   source,
		handler:  handler,
		config:   config,
		metrics:  metrics,
		log:      log,
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (x *Poller) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	x.cancel = cancel
	go x.run(ctx)
}

func (x *Poller) run(ctx context.Context) {
	defer close(x.done)

	config := tgbotapi.NewUpdate(0)
	config.Timeout = x.config.Timeout
	config.AllowedUpdates = x.config.AllowedUpdates
	updates := x.source.GetUpdatesChan(config)

	var group errgroup.Group
	group.SetLimit(max(x.config.Workers, 1))
	defer func() { _ = group.Wait() }()

	for {
		select {
		case <-x.stopping:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			group.Go(func() error {
				x.dispatch(ctx, update)
				return nil
			})
		}
	}
}

func (x *Poller) dispatch(ctx context.Context, update tgbotapi.Update) {
	log := x.log.With("update_id", update.UpdateID)
	defer func() {
		if r := recover(); r != nil {
			log.E("Update handler panicked", "panic", r)
			x.metrics.RecordMessageHandled("panic")
		}
	}()

	if user := update.SentFrom(); user != nil {
		log = log.With(tracing.UserId, user.ID, tracing.UserName, user.UserName)
	}
	if msg := update.Message; msg != nil && msg.Chat != nil {
		log = log.With(
			tracing.ChatId, msg.Chat.ID,
			tracing.MessageId, msg.MessageID,
			tracing.MessageDate, msg.Date,
		)
	}

	if err := x.handler.HandleUpdate(ctx, log, update); err != nil {
		log.E("Update handling failed", tracing.InnerError, err)
		x.metrics.RecordMessageHandled("error")
		return
	}

	log.I("Update handled")
	x.metrics.RecordMessageHandled("success")
}

// Stop stops receiving updates and waits for the in-flight ones. When ctx expires
// first, the in-flight handlers get their context cancelled.
func (x *Poller) Stop(ctx context.Context) error {
	if x.cancel == nil {
		return nil
	}

	x.once.Do(func() {
		close(x.stopping)
		x.source.StopReceivingUpdates()
	})

	select {
	case <-x.done:
		x.cancel()
		return nil
	case <-ctx.Done():
		x.cancel()
		return ctx.Err()
	}
}
