package artificial

import (
	"context"
	"errors"
	"relaybot/sources/memory"
	"relaybot/sources/tracing"
)

var errEmptyCompletion = errors.New("provider returned no choices")

// Completer turns a system instruction and an ordered conversation into a reply.
// Failures are always *ProviderError.
type Completer interface {
	Complete(ctx context.Context, log *tracing.Logger, system string, turns []memory.Turn) (string, error)
}

func NewCompleter(config *AIConfig, openai *OpenAICompleter, openrouter *OpenRouterCompleter, log *tracing.Logger) Completer {
	switch config.Provider {
	case ProviderOpenRouter:
		log.I("Completion provider selected", tracing.AiKind, ProviderOpenRouter, tracing.AiModel, config.Model)
		return openrouter
	default:
		log.I("Completion provider selected", tracing.AiKind, ProviderOpenAI, tracing.AiModel, config.Model)
		return openai
	}
}
