package artificial

import (
	"relaybot/sources/configuration"
	"time"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

type AIConfig struct {
	Provider        string
	OpenAIToken     string
	OpenRouterToken string

	Model          string
	FallbackModels []string
	SystemPrompt   string
	Timeout        time.Duration
	Encoding       string
}

func NewAIConfig(config *configuration.Config) *AIConfig {
	return &AIConfig{
		Provider:        config.AI.Provider,
		OpenAIToken:     config.AI.OpenAIToken,
		OpenRouterToken: config.AI.OpenRouterToken,

		Model:          config.AI.Model,
		FallbackModels: config.AI.FallbackModels,
		SystemPrompt:   config.AI.SystemPrompt,
		Timeout:        config.AI.Timeout,
		Encoding:       config.AI.Encoding,
	}
}
