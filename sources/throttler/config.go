package throttler

import (
	"relaybot/sources/configuration"
	"time"
)

type ThrottlerConfig struct {
	Limit  int
	Window time.Duration
}

func NewThrottlerConfig(config *configuration.Config) *ThrottlerConfig {
	return &ThrottlerConfig{Limit: config.Governance.PerMinute, Window: time.Minute}
}
