package governor

import (
	"context"
	"errors"
	"relaybot/sources/access"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonAdminIsRefusedWithoutMutation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.admin.Ban(ctx, h.log, 1, 2, "spite"), ErrUnauthorized)
	_, banned := h.registry.IsBanned(2)
	assert.False(t, banned)

	_, err := h.admin.GrantPremium(ctx, h.log, 1, 1, "pro")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, h.registry.Tier(1, h.clock.Now()).Premium)

	_, err = h.admin.Unban(ctx, h.log, 1, 2)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = h.admin.Revoke(h.log, 1, 2)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = h.admin.Status(1, 2)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = h.admin.Top(1, 10)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = h.admin.Bans(1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBanAndUnbanNotifyTarget(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.admin.Ban(ctx, h.log, adminID, 7, "flood"))
	reason, banned := h.registry.IsBanned(7)
	assert.True(t, banned)
	assert.Equal(t, "flood", reason)
	assert.Equal(t, []int64{7}, h.announcer.banned)

	bans, err := h.admin.Bans(adminID)
	require.NoError(t, err)
	assert.Equal(t, []access.Ban{{UserID: 7, Reason: "flood"}}, bans)

	unbanned, err := h.admin.Unban(ctx, h.log, adminID, 7)
	require.NoError(t, err)
	assert.True(t, unbanned)
	assert.Equal(t, []int64{7}, h.announcer.unbanned)

	unbanned, err = h.admin.Unban(ctx, h.log, adminID, 7)
	require.NoError(t, err)
	assert.False(t, unbanned)
	assert.Len(t, h.announcer.unbanned, 1)
}

func TestNotificationFailuresDoNotFailAdminCommands(t *testing.T) {
	h := newHarness(t)
	h.announcer.err = errors.New("forbidden: bot was blocked by the user")
	ctx := context.Background()

	assert.NoError(t, h.admin.Ban(ctx, h.log, adminID, 7, "flood"))
	_, err := h.admin.GrantPremium(ctx, h.log, adminID, 8, "basic")
	assert.NoError(t, err)
}

func TestInvalidTargets(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.admin.Ban(ctx, h.log, adminID, 0, ""), ErrInvalidAdminCommand)
	assert.ErrorIs(t, h.admin.Ban(ctx, h.log, adminID, adminID, ""), ErrInvalidAdminCommand)
	_, err := h.admin.Top(adminID, 0)
	assert.ErrorIs(t, err, ErrInvalidAdminCommand)
	assert.Empty(t, h.registry.Bans())
}

func TestGrantUnknownPackage(t *testing.T) {
	h := newHarness(t)

	_, err := h.admin.GrantPremium(context.Background(), h.log, adminID, 5, "gold")

	assert.ErrorIs(t, err, ErrInvalidAdminCommand)
	assert.ErrorIs(t, err, access.ErrInvalidPackage)
	assert.False(t, h.registry.Tier(5, h.clock.Now()).Premium)
	assert.Empty(t, h.announcer.granted)
}

func TestGrantClearsCheckout(t *testing.T) {
	h := newHarness(t)
	_, err := h.registry.SelectPackage(5, "basic", h.clock.Now())
	require.NoError(t, err)

	tier, err := h.admin.GrantPremium(context.Background(), h.log, adminID, 5, "basic")
	require.NoError(t, err)

	assert.True(t, tier.Premium)
	assert.Equal(t, 100, tier.DailyLimit)
	assert.Equal(t, 50, tier.MaxHistory)
	assert.False(t, tier.ExpiresAt.IsZero())
	_, pending := h.registry.Pending(5)
	assert.False(t, pending)
	assert.Equal(t, []int64{5}, h.announcer.granted)
}

func TestTopAndStatus(t *testing.T) {
	h := newHarness(t)
	h.send(1, "a")
	h.send(2, "b")
	h.send(2, "c")

	top, err := h.admin.Top(adminID, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(2), top[0].UserID)

	status, err := h.admin.Status(adminID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Daily)
}
