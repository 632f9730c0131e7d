package localization

import (
	"relaybot/sources/configuration"
)

type LocalizationConfig struct {
	DefaultLanguage    string
	SupportedLanguages []string
}

func NewLocalizationConfig(config *configuration.Config) *LocalizationConfig {
	return &LocalizationConfig{
		DefaultLanguage:    config.Localization.DefaultLanguage,
		SupportedLanguages: config.Localization.SupportedLanguages,
	}
}
