package governor

import (
	"context"
	"errors"
	"fmt"
	"relaybot/sources/access"
	"relaybot/sources/features"
	"relaybot/sources/persistence/entities"
	"relaybot/sources/quota"
	"relaybot/sources/tracing"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidAdminCommand = errors.New("invalid admin command")
)

// AdminConsole applies administrator commands. Every method checks the caller first
// and mutates nothing when the caller or the arguments are rejected.
type AdminConsole struct {
	governor *Governor
}

func NewAdminConsole(governor *Governor) *AdminConsole {
	return &AdminConsole{governor: governor}
}

func (x *AdminConsole) authorize(caller int64) error {
	if !x.governor.IsAdmin(caller) {
		return ErrUnauthorized
	}
	return nil
}

func (x *AdminConsole) validTarget(target int64) error {
	if target <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidAdminCommand)
	}
	if x.governor.IsAdmin(target) {
		return fmt.Errorf("%w: the administrator cannot be targeted", ErrInvalidAdminCommand)
	}
	return nil
}

func (x *AdminConsole) Ban(ctx context.Context, log *tracing.Logger, caller int64, target int64, reason string) error {
	if err := x.authorize(caller); err != nil {
		return err
	}
	if err := x.validTarget(target); err != nil {
		return err
	}

	g := x.governor
	g.registry.Ban(target, reason)
	log.I("User banned", tracing.TargetUserId, target, "reason", reason)
	_ = g.journal.RecordSanction(log, target, caller, entities.SanctionBan, reason)

	if g.features.IsEnabledDefault(features.FeatureUserNotifications, true) {
		if err := g.announcer.Banned(ctx, target, reason); err != nil {
			log.W("Failed to notify banned user", tracing.TargetUserId, target, tracing.InnerError, err)
		}
	}
	return nil
}

// Unban reports false when the target was not banned.
func (x *AdminConsole) Unban(ctx context.Context, log *tracing.Logger, caller int64, target int64) (bool, error) {
	if err := x.authorize(caller); err != nil {
		return false, err
	}
	if err := x.validTarget(target); err != nil {
		return false, err
	}

	g := x.governor
	if !g.registry.Unban(target) {
		return false, nil
	}
	log.I("User unbanned", tracing.TargetUserId, target)
	_ = g.journal.RecordSanction(log, target, caller, entities.SanctionUnban, "")

	if g.features.IsEnabledDefault(features.FeatureUserNotifications, true) {
		if err := g.announcer.Unbanned(ctx, target); err != nil {
			log.W("Failed to notify unbanned user", tracing.TargetUserId, target, tracing.InnerError, err)
		}
	}
	return true, nil
}

func (x *AdminConsole) GrantPremium(ctx context.Context, log *tracing.Logger, caller int64, target int64, name string) (access.Tier, error) {
	if err := x.authorize(caller); err != nil {
		return access.Tier{}, err
	}
	if err := x.validTarget(target); err != nil {
		return access.Tier{}, err
	}

	g := x.governor
	now := g.clock.Now()
	assignment, err := g.registry.GrantPremium(target, name, now)
	if err != nil {
		return access.Tier{}, fmt.Errorf("%w: %w", ErrInvalidAdminCommand, err)
	}

	tier := g.registry.Tier(target, now)
	log.I("Premium granted", tracing.TargetUserId, target, tracing.PackageName, name, tracing.DailyLimit, tier.DailyLimit)
	g.metrics.RecordPayment("granted")

	if pkg, ok := g.registry.Catalog().Lookup(name); ok {
		_ = g.journal.RecordGrant(log, target, caller, pkg, g.config.Currency, assignment)
	}

	if g.features.IsEnabledDefault(features.FeatureUserNotifications, true) {
		if err := g.announcer.PremiumGranted(ctx, target, tier); err != nil {
			log.W("Failed to notify premium user", tracing.TargetUserId, target, tracing.InnerError, err)
		}
	}
	return tier, nil
}

func (x *AdminConsole) Revoke(log *tracing.Logger, caller int64, target int64) (bool, error) {
	if err := x.authorize(caller); err != nil {
		return false, err
	}
	if err := x.validTarget(target); err != nil {
		return false, err
	}

	revoked := x.governor.registry.Revoke(target)
	if revoked {
		log.I("Premium revoked", tracing.TargetUserId, target)
	}
	return revoked, nil
}

func (x *AdminConsole) Status(caller int64, target int64) (UserStatus, error) {
	if err := x.authorize(caller); err != nil {
		return UserStatus{}, err
	}
	if target <= 0 {
		return UserStatus{}, fmt.Errorf("%w: user id must be positive", ErrInvalidAdminCommand)
	}
	return x.governor.Status(target), nil
}

func (x *AdminConsole) Top(caller int64, n int) ([]quota.Standing, error) {
	if err := x.authorize(caller); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", ErrInvalidAdminCommand)
	}
	x.governor.rollover(x.governor.clock.Now())
	return x.governor.ledger.Top(n), nil
}

func (x *AdminConsole) Bans(caller int64) ([]access.Ban, error) {
	if err := x.authorize(caller); err != nil {
		return nil, err
	}
	return x.governor.registry.Bans(), nil
}
