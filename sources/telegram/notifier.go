package telegram

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/clock"
	"relaybot/sources/governor"
	"relaybot/sources/localization"
	"relaybot/sources/texting/format"
	"relaybot/sources/texting/transform"
	"relaybot/sources/tracing"
)

const mirrorPreviewLength = 1024

// AdminNotifier delivers checkout events and administrative notices. It is both the
// registry's Notifier and the governor's Announcer.
type AdminNotifier struct {
	diplomat     *Diplomat
	localization *localization.LocalizationManager
	calendar     *clock.Calendar
	config       *HandlerConfig
	log          *tracing.Logger
}

func NewAdminNotifier(
	diplomat *Diplomat,
	localization *localization.LocalizationManager,
	calendar *clock.Calendar,
	config *HandlerConfig,
	log *tracing.Logger,
) *AdminNotifier {
	return &AdminNotifier{diplomat: diplomat, localization: localization, calendar: calendar, config: config, log: log}
}

func (x *AdminNotifier) admin(messageID string, td map[string]any) string {
	return x.localization.LocalizeID(x.config.AdminID, messageID, td)
}

func (x *AdminNotifier) PaymentAcknowledged(ctx context.Context, userID int64, pkg access.Package) error {
	text := x.admin("admin_payment_ack", map[string]any{
		"UserID":  userID,
		"Package": pkg.Name,
		"Price":   format.Currencify(pkg.Price, x.config.Currency),
	})
	return x.diplomat.SendMessage(x.log.With(tracing.UserId, userID), x.config.AdminID, text)
}

func (x *AdminNotifier) ReceiptReceived(ctx context.Context, userID int64, pkg access.Package, photoRef string) error {
	caption := x.admin("admin_receipt", map[string]any{
		"UserID":  userID,
		"Package": pkg.Name,
		"Price":   format.Currencify(pkg.Price, x.config.Currency),
	})
	return x.diplomat.SendPhoto(x.log.With(tracing.UserId, userID), x.config.AdminID, photoRef, caption)
}

func (x *AdminNotifier) Mirror(ctx context.Context, in governor.Inbound) error {
	name := in.UserName
	if name == "" {
		name = "-"
	}
	text := x.admin("admin_mirror", map[string]any{
		"Name":   name,
		"UserID": in.UserID,
		"Text":   transform.SmartTruncate(in.Text, mirrorPreviewLength),
	})
	return x.diplomat.SendMessage(x.log.With(tracing.UserId, in.UserID), x.config.AdminID, text)
}

func (x *AdminNotifier) Banned(ctx context.Context, userID int64, reason string) error {
	text := x.localization.LocalizeID(userID, "notify_banned", map[string]any{"Reason": reason})
	return x.diplomat.SendMessage(x.log.With(tracing.TargetUserId, userID), userID, text)
}

func (x *AdminNotifier) Unbanned(ctx context.Context, userID int64) error {
	text := x.localization.LocalizeID(userID, "notify_unbanned", nil)
	return x.diplomat.SendMessage(x.log.With(tracing.TargetUserId, userID), userID, text)
}

func (x *AdminNotifier) PremiumGranted(ctx context.Context, userID int64, tier access.Tier) error {
	text := x.localization.LocalizeID(userID, "notify_premium", map[string]any{
		"Package":    tier.Package,
		"DailyLimit": tier.DailyLimit,
	})
	if !tier.ExpiresAt.IsZero() {
		text += "\n" + x.localization.LocalizeID(userID, "notify_premium_expires", map[string]any{
			"ExpiresAt": format.Datify(tier.ExpiresAt, x.calendar.Location()),
		})
	}
	return x.diplomat.SendMessage(x.log.With(tracing.TargetUserId, userID), userID, text)
}
