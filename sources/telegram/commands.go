package telegram

import (
	"context"
	"errors"
	"relaybot/sources/access"
	"relaybot/sources/governor"
	"relaybot/sources/texting/format"
	"relaybot/sources/tracing"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type localizeFunc func(messageID string, td map[string]any) string

func (x *TelegramHandler) localizeFor(user *tgbotapi.User) localizeFunc {
	return func(messageID string, td map[string]any) string {
		return x.localization.LocalizeUser(user, messageID, td)
	}
}

func (x *TelegramHandler) handleStart(log *tracing.Logger, msg *tgbotapi.Message) {
	name := msg.From.FirstName
	if name == "" {
		name = displayName(msg.From)
	}
	x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, "start_greeting", map[string]any{"Name": name}))
}

func (x *TelegramHandler) handleHelp(log *tracing.Logger, msg *tgbotapi.Message) {
	text := x.localization.LocalizeBy(msg, "help")
	if x.governor.IsAdmin(msg.From.ID) {
		text += "\n\n" + x.localization.LocalizeBy(msg, "help_admin")
	}
	x.diplomat.Reply(log, msg, text)
}

func (x *TelegramHandler) handleStatus(log *tracing.Logger, msg *tgbotapi.Message) {
	if x.governor.IsAdmin(msg.From.ID) && strings.TrimSpace(msg.CommandArguments()) != "" {
		x.handleAdminStatus(log, msg)
		return
	}

	status := x.governor.Status(msg.From.ID)
	x.diplomat.Reply(log, msg, x.renderStatus(x.localizeFor(msg.From), status))
}

func (x *TelegramHandler) renderStatus(localize localizeFunc, status governor.UserStatus) string {
	tier := status.Tier.Package
	if !status.Tier.Premium {
		tier = localize("tier_standard", nil)
	}

	lines := []string{localize("status", map[string]any{
		"Tier":     tier,
		"Daily":    status.Daily,
		"Limit":    status.Tier.DailyLimit,
		"Lifetime": status.Lifetime,
		"History":  status.Tier.MaxHistory,
	})}

	if status.Tier.Premium && !status.Tier.ExpiresAt.IsZero() {
		lines = append(lines, localize("status_expires", map[string]any{
			"ExpiresAt": format.Datify(status.Tier.ExpiresAt, x.calendar.Location()),
		}))
	}
	if status.Pending != nil {
		lines = append(lines, localize("status_pending", map[string]any{"Package": status.Pending.Package}))
	}
	if status.Banned {
		lines = append(lines, localize("status_banned", map[string]any{"Reason": status.BanReason}))
	}
	return strings.Join(lines, "\n")
}

func (x *TelegramHandler) handlePremium(log *tracing.Logger, msg *tgbotapi.Message) {
	packages := x.registry.Catalog().Packages()
	if len(packages) == 0 {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "premium_none"))
		return
	}

	lines := []string{x.localization.LocalizeBy(msg, "premium_intro")}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(packages))
	for _, pkg := range packages {
		if len(pkg.Features) != 0 {
			lines = append(lines, x.localization.LocalizeByTd(msg, "premium_features", map[string]any{
				"Name":     pkg.Name,
				"Features": strings.Join(pkg.Features, ", "),
			}))
		}

		label := x.localization.LocalizeByTd(msg, "premium_package", map[string]any{
			"Name":       pkg.Name,
			"DailyLimit": pkg.DailyLimit,
			"Price":      format.Currencify(pkg.Price, x.config.Currency),
		})
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, packageCallbackPrefix+pkg.Name),
		))
	}

	x.diplomat.Reply(log, msg, strings.Join(lines, "\n"), WithKeyboard(tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (x *TelegramHandler) renderCheckout(user *tgbotapi.User, checkout access.Checkout) string {
	expiresAt := "-"
	if !checkout.ExpiresAt.IsZero() {
		expiresAt = format.Datify(checkout.ExpiresAt, x.calendar.Location())
	}
	return x.localization.LocalizeUser(user, "checkout", map[string]any{
		"Package":      checkout.Package.Name,
		"Price":        format.Currencify(checkout.Price, checkout.Currency),
		"Instructions": checkout.Instructions,
		"ExpiresAt":    expiresAt,
	})
}

func (x *TelegramHandler) handlePaid(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	err := x.registry.AcknowledgePayment(ctx, msg.From.ID)
	if errors.Is(err, access.ErrNoPendingPayment) {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "paid_nothing_pending"))
		return
	}
	if err != nil {
		log.E("Failed to acknowledge payment", tracing.InnerError, err)
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "failure_generic"))
		return
	}

	x.metrics.RecordPayment("acknowledged")
	x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "paid_ack"))
}

func (x *TelegramHandler) handleCancel(log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.registry.CancelPayment(msg.From.ID) {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "cancel_nothing"))
		return
	}

	x.metrics.RecordPayment("cancelled")
	x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "cancel_done"))
}

func (x *TelegramHandler) handleReceipt(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	photo := msg.Photo[len(msg.Photo)-1]

	err := x.registry.ReceiveReceipt(ctx, msg.From.ID, photo.FileID)
	if errors.Is(err, access.ErrNotExpectingReceipt) {
		x.metrics.RecordMessageIgnored("unexpected_receipt")
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "receipt_not_expecting"))
		return
	}
	if err != nil {
		log.E("Failed to accept receipt", tracing.InnerError, err)
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "failure_generic"))
		return
	}

	log.I("Receipt forwarded to administrator")
	x.metrics.RecordPayment("receipt")
	x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "receipt_received"))
}
