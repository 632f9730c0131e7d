package localization

import (
	"slices"
	"strings"
	"sync"
)

// LanguageResolver maps a Telegram language_code onto one of the bundled locales and
// remembers the last answer per user, so notifications sent outside of an update
// still reach the user in their language.
type LanguageResolver struct {
	config *LocalizationConfig
	cache  sync.Map
}

func NewLanguageResolver(config *LocalizationConfig) *LanguageResolver {
	return &LanguageResolver{config: config}
}

func (x *LanguageResolver) Resolve(userID int64, telegramCode string) string {
	code := x.mapTelegramLanguageCode(telegramCode)
	if code == "" {
		if cached, ok := x.cache.Load(userID); ok {
			return cached.(string)
		}
		return x.config.DefaultLanguage
	}

	x.cache.Store(userID, code)
	return code
}

// Remembered returns the language last seen for the user, or the default one.
func (x *LanguageResolver) Remembered(userID int64) string {
	if cached, ok := x.cache.Load(userID); ok {
		return cached.(string)
	}
	return x.config.DefaultLanguage
}

func (x *LanguageResolver) mapTelegramLanguageCode(telegramCode string) string {
	lowerCode := strings.ToLower(strings.TrimSpace(telegramCode))
	if lowerCode == "" {
		return ""
	}

	base, _, _ := strings.Cut(lowerCode, "-")
	if slices.Contains(x.config.SupportedLanguages, base) {
		return base
	}
	return x.config.DefaultLanguage
}
