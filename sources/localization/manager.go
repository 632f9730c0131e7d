package localization

import (
	"embed"
	"fmt"
	"relaybot/sources/metrics"
	"relaybot/sources/tracing"

	"github.com/BurntSushi/toml"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

type LocalizationManager struct {
	bundle   *i18n.Bundle
	resolver *LanguageResolver
	config   *LocalizationConfig
	metrics  *metrics.MetricsService
	log      *tracing.Logger
}

func NewLocalizationManager(
	config *LocalizationConfig,
	resolver *LanguageResolver,
	metrics *metrics.MetricsService,
	log *tracing.Logger,
) (*LocalizationManager, error) {
	base, err := language.Parse(config.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", config.DefaultLanguage, err)
	}

	bundle := i18n.NewBundle(base)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range config.SupportedLanguages {
		filename := fmt.Sprintf("locales/active.%s.toml", lang)

		data, err := localesFS.ReadFile(filename)
		if err != nil {
			log.E("Failed to read locale file", "filename", filename, tracing.InnerError, err)
			return nil, fmt.Errorf("failed to read locale file %s: %w", filename, err)
		}

		if _, err := bundle.ParseMessageFileBytes(data, filename); err != nil {
			log.E("Failed to parse locale file", "filename", filename, tracing.InnerError, err)
			return nil, fmt.Errorf("failed to parse locale file %s: %w", filename, err)
		}

		log.I("Loaded locale file", "filename", filename)
	}

	log.I("LocalizationManager initialized successfully", "default_language", config.DefaultLanguage)
	return &LocalizationManager{bundle: bundle, resolver: resolver, config: config, metrics: metrics, log: log}, nil
}

func (x *LocalizationManager) localizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(x.bundle, lang, x.config.DefaultLanguage)
}

func (x *LocalizationManager) Localize(localizer *i18n.Localizer, messageID string) string {
	return x.LocalizeTd(localizer, messageID, nil)
}

func (x *LocalizationManager) LocalizeTd(localizer *i18n.Localizer, messageID string, templateData map[string]any) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
	if err != nil {
		x.log.E("Failed to localize message", "message_id", messageID, tracing.InnerError, err)
		return messageID
	}

	return msg
}

func (x *LocalizationManager) LocalizeUser(user *tgbotapi.User, messageID string, templateData map[string]any) string {
	if user == nil {
		return x.LocalizeTd(x.localizer(x.config.DefaultLanguage), messageID, templateData)
	}

	lang := x.resolver.Resolve(user.ID, user.LanguageCode)
	x.metrics.RecordLanguageResolved(lang)
	return x.LocalizeTd(x.localizer(lang), messageID, templateData)
}

func (x *LocalizationManager) LocalizeBy(msg *tgbotapi.Message, messageID string) string {
	return x.LocalizeByTd(msg, messageID, nil)
}

func (x *LocalizationManager) LocalizeByTd(msg *tgbotapi.Message, messageID string, templateData map[string]any) string {
	return x.LocalizeUser(msg.From, messageID, templateData)
}

// LocalizeID is used for messages addressed to a user outside of their own update.
func (x *LocalizationManager) LocalizeID(userID int64, messageID string, templateData map[string]any) string {
	return x.LocalizeTd(x.localizer(x.resolver.Remembered(userID)), messageID, templateData)
}
