package telegram

import (
	"context"
	"errors"
	"relaybot/sources/governor"
	"relaybot/sources/texting/format"
	"relaybot/sources/tracing"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultBanReason = "-"

// requireAdmin answers the refusal itself and reports whether the caller may go on.
func (x *TelegramHandler) requireAdmin(log *tracing.Logger, msg *tgbotapi.Message) bool {
	if x.governor.IsAdmin(msg.From.ID) {
		return true
	}
	log.W("Administrator command refused")
	x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "unauthorized"))
	return false
}

func (x *TelegramHandler) replyAdminError(log *tracing.Logger, msg *tgbotapi.Message, err error) {
	if errors.Is(err, governor.ErrUnauthorized) {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "unauthorized"))
		return
	}
	log.W("Administrator command rejected", tracing.InnerError, err)
	x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, "admin_invalid", map[string]any{"Error": err.Error()}))
}

func (x *TelegramHandler) handleBan(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.requireAdmin(log, msg) {
		return
	}

	var cmd BanCmd
	if err := ParseRequiredCmd(&cmd, msg.CommandArguments()); err != nil {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "admin_usage_ban"))
		return
	}

	reason := strings.TrimSpace(strings.Join(cmd.Reason, " "))
	if reason == "" {
		reason = defaultBanReason
	}

	if err := x.admin.Ban(ctx, log, msg.From.ID, cmd.UserID, reason); err != nil {
		x.replyAdminError(log, msg, err)
		return
	}
	x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, "admin_banned", map[string]any{"UserID": cmd.UserID}))
}

func (x *TelegramHandler) handleUnban(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.requireAdmin(log, msg) {
		return
	}

	var cmd UnbanCmd
	if err := ParseRequiredCmd(&cmd, msg.CommandArguments()); err != nil {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "admin_usage_unban"))
		return
	}

	unbanned, err := x.admin.Unban(ctx, log, msg.From.ID, cmd.UserID)
	if err != nil {
		x.replyAdminError(log, msg, err)
		return
	}

	messageID := "admin_unbanned"
	if !unbanned {
		messageID = "admin_not_banned"
	}
	x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, messageID, map[string]any{"UserID": cmd.UserID}))
}

func (x *TelegramHandler) handleGivePremium(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.requireAdmin(log, msg) {
		return
	}

	var cmd GivePremiumCmd
	if err := ParseRequiredCmd(&cmd, msg.CommandArguments()); err != nil {
		x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, "admin_usage_givepremium", map[string]any{
			"Packages": strings.Join(x.registry.Catalog().Names(), ", "),
		}))
		return
	}

	tier, err := x.admin.GrantPremium(ctx, log, msg.From.ID, cmd.UserID, cmd.Package)
	if err != nil {
		x.replyAdminError(log, msg, err)
		return
	}
	x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, "admin_granted", map[string]any{
		"UserID":     cmd.UserID,
		"Package":    tier.Package,
		"DailyLimit": tier.DailyLimit,
	}))
}

func (x *TelegramHandler) handleRevoke(log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.requireAdmin(log, msg) {
		return
	}

	var cmd RevokeCmd
	if err := ParseRequiredCmd(&cmd, msg.CommandArguments()); err != nil {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "admin_usage_revoke"))
		return
	}

	revoked, err := x.admin.Revoke(log, msg.From.ID, cmd.UserID)
	if err != nil {
		x.replyAdminError(log, msg, err)
		return
	}

	messageID := "admin_revoked"
	if !revoked {
		messageID = "admin_not_premium"
	}
	x.diplomat.Reply(log, msg, x.localization.LocalizeByTd(msg, messageID, map[string]any{"UserID": cmd.UserID}))
}

func (x *TelegramHandler) handleAdminStatus(log *tracing.Logger, msg *tgbotapi.Message) {
	var cmd StatusCmd
	if err := ParseRequiredCmd(&cmd, msg.CommandArguments()); err != nil {
		x.replyAdminError(log, msg, err)
		return
	}

	status, err := x.admin.Status(msg.From.ID, cmd.UserID)
	if err != nil {
		x.replyAdminError(log, msg, err)
		return
	}

	localize := x.localizeFor(msg.From)
	header := localize("admin_status_header", map[string]any{"UserID": cmd.UserID})
	x.diplomat.Reply(log, msg, header+"\n"+x.renderStatus(localize, status))
}

func (x *TelegramHandler) handleTop(log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.requireAdmin(log, msg) {
		return
	}

	var cmd TopCmd
	if err := ParseCmd(&cmd, msg.CommandArguments()); err != nil {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "admin_usage_top"))
		return
	}

	standings, err := x.admin.Top(msg.From.ID, cmd.Count)
	if err != nil {
		x.replyAdminError(log, msg, err)
		return
	}
	if len(standings) == 0 {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "admin_top_empty"))
		return
	}

	lines := []string{x.localization.LocalizeBy(msg, "admin_top_header")}
	for i, standing := range standings {
		lines = append(lines, x.localization.LocalizeByTd(msg, "admin_top_line", map[string]any{
			"Rank":     i + 1,
			"UserID":   standing.UserID,
			"Lifetime": format.Numberify(int64(standing.Lifetime)),
			"Daily":    format.Numberify(int64(standing.Daily)),
		}))
	}
	x.diplomat.Reply(log, msg, strings.Join(lines, "\n"))
}

func (x *TelegramHandler) handleBans(log *tracing.Logger, msg *tgbotapi.Message) {
	if !x.requireAdmin(log, msg) {
		return
	}

	bans, err := x.admin.Bans(msg.From.ID)
	if err != nil {
		x.replyAdminError(log, msg, err)
		return
	}
	if len(bans) == 0 {
		x.diplomat.Reply(log, msg, x.localization.LocalizeBy(msg, "admin_bans_empty"))
		return
	}

	lines := []string{x.localization.LocalizeBy(msg, "admin_bans_header")}
	for _, ban := range bans {
		lines = append(lines, x.localization.LocalizeByTd(msg, "admin_bans_line", map[string]any{
			"UserID": ban.UserID,
			"Reason": ban.Reason,
		}))
	}
	x.diplomat.Reply(log, msg, strings.Join(lines, "\n"))
}
