package telegram

import (
	"relaybot/sources/metrics"
	"relaybot/sources/texting"
	"relaybot/sources/texting/transform"
	"relaybot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Option decorates the last chunk of an outgoing message.
type Option func(msg *tgbotapi.MessageConfig)

func WithReplyTo(messageID int) Option {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ReplyToMessageID = messageID
	}
}

func WithKeyboard(markup tgbotapi.InlineKeyboardMarkup) Option {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ReplyMarkup = markup
	}
}

type Diplomat struct {
	sender  Sender
	config  *DiplomatConfig
	metrics *metrics.MetricsService
}

func NewDiplomat(sender Sender, config *DiplomatConfig, metrics *metrics.MetricsService) *Diplomat {
	return &Diplomat{sender: sender, config: config, metrics: metrics}
}

// SendMessage delivers text in chunks of at most ChunkSize runes. Sending stops at the
// first failed chunk.
func (x *Diplomat) SendMessage(logger *tracing.Logger, chatID int64, text string, options ...Option) error {
	defer tracing.ProfilePoint(logger, "Diplomat send message completed", "diplomat.send_message", tracing.ChatId, chatID)()

	chunks := transform.Chunks(text, x.config.ChunkSize)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, texting.EscapeMarkdown(chunk))
		msg.ParseMode = tgbotapi.ModeMarkdownV2

		if i == len(chunks)-1 {
			for _, option := range options {
				option(&msg)
			}
		}

		if _, err := x.sender.Send(msg); err != nil {
			logger.E("Message chunk sending error", tracing.InnerError, err, "chunk", i)
			x.metrics.RecordMessageSent("error")
			return err
		}
		x.metrics.RecordMessageSent("success")
	}
	return nil
}

func (x *Diplomat) Reply(logger *tracing.Logger, msg *tgbotapi.Message, text string, options ...Option) {
	options = append([]Option{WithReplyTo(msg.MessageID)}, options...)
	if err := x.SendMessage(logger, msg.Chat.ID, text, options...); err != nil {
		logger.W("Reply was not delivered", tracing.MessageId, msg.MessageID)
	}
}

func (x *Diplomat) SendPhoto(logger *tracing.Logger, chatID int64, fileID string, caption string) error {
	defer tracing.ProfilePoint(logger, "Diplomat send photo completed", "diplomat.send_photo", tracing.ChatId, chatID)()

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption

	if _, err := x.sender.Send(photo); err != nil {
		logger.E("Photo sending error", tracing.InnerError, err)
		x.metrics.RecordMessageSent("error")
		return err
	}
	x.metrics.RecordMessageSent("success")
	return nil
}

func (x *Diplomat) SendTyping(logger *tracing.Logger, chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := x.sender.Request(action); err != nil {
		logger.W("Failed to send typing action", tracing.InnerError, err)
	}
}

func (x *Diplomat) AnswerCallback(logger *tracing.Logger, queryID string, text string) {
	if _, err := x.sender.Request(tgbotapi.NewCallback(queryID, text)); err != nil {
		logger.W("Failed to answer callback", tracing.InnerError, err)
	}
}
