package access

import (
	"relaybot/sources/configuration"
	"time"
)

type AccessConfig struct {
	DefaultDailyLimit int
	StandardHistory   int
	PremiumHistory    int
	Instructions      string
	Currency          string
	PendingTTL        time.Duration
	SweepInterval     time.Duration
}

func NewAccessConfig(config *configuration.Config) *AccessConfig {
	return &AccessConfig{
		DefaultDailyLimit: config.Governance.DefaultDailyLimit,
		StandardHistory:   config.Governance.StandardHistory,
		PremiumHistory:    config.Governance.PremiumHistory,
		Instructions:      config.Payments.Instructions,
		Currency:          config.Payments.Currency,
		PendingTTL:        config.Payments.PendingTTL,
		SweepInterval:     config.Payments.SweepInterval,
	}
}
