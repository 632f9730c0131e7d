package telegram

import (
	"fmt"
	"net/http"
	"relaybot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Bot API the relay writes through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UpdateSource is the part of the Bot API the poller reads from.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

func NewBotAPI(log *tracing.Logger, config *BotConfig, client *http.Client) (*tgbotapi.BotAPI, error) {
	endpoint := tgbotapi.APIEndpoint
	if config.APIEndpoint != "" {
		endpoint = config.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(config.Token, endpoint, client)
	if err != nil {
		log.E("Failed to initialize telegram bot", tracing.InnerError, err)
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	if config.APIEndpoint != "" {
		log.I("Telegram bot initialized with custom API endpoint", "api_endpoint", config.APIEndpoint, "bot", bot.Self.UserName)
	} else {
		log.I("Telegram bot initialized with default API endpoint", "bot", bot.Self.UserName)
	}

	return bot, nil
}
