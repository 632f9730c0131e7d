package telegram

import (
	"context"
	"errors"
	"relaybot/sources/access"
	"relaybot/sources/artificial"
	"relaybot/sources/clock"
	"relaybot/sources/governor"
	"relaybot/sources/localization"
	"relaybot/sources/metrics"
	"relaybot/sources/tracing"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const packageCallbackPrefix = "package:"

type TelegramHandler struct {
	diplomat     *Diplomat
	typing       *TypingManager
	governor     *governor.Governor
	admin        *governor.AdminConsole
	registry     *access.Registry
	localization *localization.LocalizationManager
	clock        clock.Clock
	calendar     *clock.Calendar
	config       *HandlerConfig
	metrics      *metrics.MetricsService
}

func NewTelegramHandler(
	diplomat *Diplomat,
	typing *TypingManager,
	governor *governor.Governor,
	admin *governor.AdminConsole,
	registry *access.Registry,
	localization *localization.LocalizationManager,
	clock clock.Clock,
	calendar *clock.Calendar,
	config *HandlerConfig,
	metrics *metrics.MetricsService,
) *TelegramHandler {
	return &TelegramHandler{
		diplomat:     diplomat,
		typing:       typing,
		governor:     governor,
		admin:        admin,
		registry:     registry,
		localization: localization,
		clock:        clock,
		calendar:     calendar,
		config:       config,
		metrics:      metrics,
	}
}

func (x *TelegramHandler) HandleUpdate(ctx context.Context, log *tracing.Logger, update tgbotapi.Update) error {
	switch {
	case update.Message != nil:
		return x.HandleMessage(ctx, log, update.Message)
	case update.CallbackQuery != nil:
		return x.HandleCallback(ctx, log, update.CallbackQuery)
	default:
		x.metrics.RecordMessageIgnored("update_kind")
		return nil
	}
}

func (x *TelegramHandler) HandleMessage(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) error {
	defer tracing.ProfilePoint(log, "Telegram handler message completed", "telegram.handler.message")()

	if msg.From == nil || msg.From.IsBot {
		x.metrics.RecordMessageIgnored("anonymous")
		return nil
	}

	if !msg.Chat.IsPrivate() {
		log.I("Ignoring message outside of a private chat")
		x.metrics.RecordMessageIgnored("non_private")
		return nil
	}

	if len(msg.Photo) != 0 {
		x.handleReceipt(ctx, log.With(tracing.CommandIssued, "receipt"), msg)
		return nil
	}

	if msg.IsCommand() {
		log = log.With(tracing.CommandIssued, msg.Command())
		x.metrics.RecordCommandUsed(msg.Command())
		x.handleCommand(ctx, log, msg)
		return nil
	}

	if strings.TrimSpace(msg.Text) == "" {
		log.I("Ignoring message without text")
		x.metrics.RecordMessageIgnored("unsupported")
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "unsupported_message"))
		return nil
	}

	x.handleText(ctx, log, msg)
	return nil
}

func (x *TelegramHandler) handleCommand(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		x.handleStart(log, msg)
	case "help":
		x.handleHelp(log, msg)
	case "status":
		x.handleStatus(log, msg)
	case "premium":
		x.handlePremium(log, msg)
	case "paid":
		x.handlePaid(ctx, log, msg)
	case "cancel":
		x.handleCancel(log, msg)
	case "ban":
		x.handleBan(ctx, log, msg)
	case "unban":
		x.handleUnban(ctx, log, msg)
	case "givepremium":
		x.handleGivePremium(ctx, log, msg)
	case "revoke":
		x.handleRevoke(log, msg)
	case "top":
		x.handleTop(log, msg)
	case "bans":
		x.handleBans(log, msg)
	default:
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "unknown_command"))
	}
}

func (x *TelegramHandler) handleText(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	stop := x.typing.Start(log, msg.Chat.ID)
	outcome := x.governor.Handle(ctx, log, governor.Inbound{
		UserID:   msg.From.ID,
		ChatID:   msg.Chat.ID,
		UserName: displayName(msg.From),
		Text:     msg.Text,
	})
	stop()

	x.diplomat.Reply(log, msg, x.renderOutcome(msg, outcome))
}

func (x *TelegramHandler) renderOutcome(msg *tgbotapi.Message, outcome governor.Outcome) string {
	switch outcome.Kind {
	case governor.Replied:
		return outcome.Reply
	case governor.Rejected:
		return x.renderRejection(msg, outcome.Rejection)
	default:
		if artificial.IsRateLimited(outcome.Err) {
			return x.localization.LocalizeBy(msg, "failure_rate_limited")
		}
		return x.localization.LocalizeBy(msg, "failure_generic")
	}
}

func (x *TelegramHandler) renderRejection(msg *tgbotapi.Message, rejection *governor.Rejection) string {
	switch rejection.Kind {
	case governor.Banned:
		return x.localization.LocalizeByTd(msg, "rejected_banned", map[string]any{"Reason": rejection.Reason})
	case governor.QuotaExceeded:
		text := x.localization.LocalizeByTd(msg, "rejected_quota", map[string]any{"Limit": rejection.Limit})
		if !rejection.Premium && len(x.registry.Catalog().Packages()) != 0 {
			text += "\n\n" + x.localization.LocalizeBy(msg, "rejected_quota_upgrade")
		}
		return text
	default:
		return x.localization.LocalizeBy(msg, "rejected_throttled")
	}
}

func (x *TelegramHandler) HandleCallback(ctx context.Context, log *tracing.Logger, query *tgbotapi.CallbackQuery) error {
	defer tracing.ProfilePoint(log, "Telegram handler callback completed", "telegram.handler.callback")()
	log = log.With(tracing.CallbackData, query.Data)

	if query.From == nil {
		x.metrics.RecordMessageIgnored("anonymous")
		return nil
	}

	name, ok := strings.CutPrefix(query.Data, packageCallbackPrefix)
	if !ok {
		log.W("Unknown callback data")
		x.diplomat.AnswerCallback(log, query.ID, "")
		return nil
	}

	checkout, err := x.registry.SelectPackage(query.From.ID, name, x.clock.Now())
	if errors.Is(err, access.ErrUnknownPackage) {
		x.diplomat.AnswerCallback(log, query.ID, x.localization.LocalizeUser(query.From, "checkout_unknown", nil))
		return nil
	}
	if err != nil {
		return err
	}

	x.diplomat.AnswerCallback(log, query.ID, "")
	x.metrics.RecordPayment("selected")
	log.I("Package selected", tracing.PackageName, name)

	chatID := query.From.ID
	if query.Message != nil {
		chatID = query.Message.Chat.ID
	}
	return x.diplomat.SendMessage(log, chatID, x.renderCheckout(query.From, checkout))
}

func displayName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
