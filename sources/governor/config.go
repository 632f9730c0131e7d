package governor

import (
	"relaybot/sources/configuration"
	"time"
)

const defaultCompletionTimeout = 60 * time.Second

type GovernorConfig struct {
	AdminID      int64
	SystemPrompt string
	Model        string
	Timeout      time.Duration
	Currency     string
}

func NewGovernorConfig(config *configuration.Config) *GovernorConfig {
	return &GovernorConfig{
		AdminID:      config.Telegram.AdminID,
		SystemPrompt: config.AI.SystemPrompt,
		Model:        config.AI.Model,
		Timeout:      config.AI.Timeout,
		Currency:     config.Payments.Currency,
	}
}

// completionTimeout never returns an unbounded duration.
func (c *GovernorConfig) completionTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultCompletionTimeout
	}
	return c.Timeout
}
