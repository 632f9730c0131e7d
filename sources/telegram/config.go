package telegram

import (
	"relaybot/sources/configuration"
)

type BotConfig struct {
	Token       string
	APIEndpoint string
}

type DiplomatConfig struct {
	ChunkSize int
}

type PollerConfig struct {
	Timeout        int
	AllowedUpdates []string
	Workers        int
}

type HandlerConfig struct {
	AdminID  int64
	Currency string
}

func NewBotConfig(config *configuration.Config) *BotConfig {
	return &BotConfig{
		Token:       config.Telegram.BotToken,
		APIEndpoint: config.Telegram.APIEndpoint,
	}
}

func NewDiplomatConfig(config *configuration.Config) *DiplomatConfig {
	return &DiplomatConfig{
		ChunkSize: config.Telegram.ChunkSize,
	}
}

func NewPollerConfig(config *configuration.Config) *PollerConfig {
	return &PollerConfig{
		Timeout:        config.Telegram.PollerTimeout,
		AllowedUpdates: config.Telegram.AllowedUpdates,
		Workers:        config.Telegram.Workers,
	}
}

func NewHandlerConfig(config *configuration.Config) *HandlerConfig {
	return &HandlerConfig{
		AdminID:  config.Telegram.AdminID,
		Currency: config.Payments.Currency,
	}
}
