package artificial

import (
	"context"
	"errors"
	"net/http"
	"relaybot/sources/memory"
	"relaybot/sources/metrics"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"
	"time"

	openrouter "github.com/revrost/go-openrouter"
)

func NewOpenRouterClient(config *AIConfig, client *http.Client) *openrouter.Client {
	clientConfig := openrouter.DefaultConfig(config.OpenRouterToken)
	clientConfig.HTTPClient = client
	clientConfig.XTitle = "relaybot"

	return openrouter.NewClientWithConfig(*clientConfig)
}

type OpenRouterCompleter struct {
	client  *openrouter.Client
	config  *AIConfig
	tokens  *TokenCounter
	metrics *metrics.MetricsService
}

func NewOpenRouterCompleter(client *openrouter.Client, config *AIConfig, tokens *TokenCounter, metrics *metrics.MetricsService) *OpenRouterCompleter {
	return &OpenRouterCompleter{client: client, config: config, tokens: tokens, metrics: metrics}
}

func (x *OpenRouterCompleter) Complete(ctx context.Context, log *tracing.Logger, system string, turns []memory.Turn) (string, error) {
	messages := make([]openrouter.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openrouter.ChatCompletionMessage{
		Role:    openrouter.ChatMessageRoleSystem,
		Content: openrouter.Content{Text: system},
	})
	for _, turn := range turns {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role:    openRouterRole(turn.Role),
			Content: openrouter.Content{Text: turn.Content},
		})
	}

	request := openrouter.ChatCompletionRequest{
		Model:    x.config.Model,
		Models:   x.config.FallbackModels,
		Messages: messages,
	}

	log = log.With(tracing.AiKind, "openrouter/chat", tracing.AiModel, request.Model)
	promptTokens := x.tokens.CountRequest(system, turns)
	log.I("ai requested", tracing.AiTokens, promptTokens, tracing.HistoryLength, len(turns))

	start := time.Now()
	response, err := tracing.ReportExecutionForRE(log, func() (openrouter.ChatCompletionResponse, error) {
		return x.client.CreateChatCompletion(ctx, request)
	}, func(l *tracing.Logger) {
		l.D("ai responded")
	})
	x.metrics.RecordAIRequestDuration(time.Since(start), request.Model)

	if err != nil {
		providerErr := classifyOpenRouter(err)
		x.metrics.RecordProviderError(providerErr.Kind.String())
		log.E("ai failed", tracing.AiFailure, providerErr.Kind.String(), tracing.InnerError, err)
		return "", providerErr
	}

	if len(response.Choices) == 0 {
		x.metrics.RecordProviderError(Fatal.String())
		return "", &ProviderError{Kind: Fatal, Provider: ProviderOpenRouter, Err: errEmptyCompletion}
	}

	reply := response.Choices[0].Message.Content.Text
	completionTokens := x.tokens.Count(reply)
	x.metrics.RecordPromptTokens(promptTokens, request.Model)
	x.metrics.RecordCompletionTokens(completionTokens, request.Model)
	log.I("ai completed", tracing.AiTokens, promptTokens+completionTokens)

	return reply, nil
}

func classifyOpenRouter(err error) *ProviderError {
	var apiErr *openrouter.APIError
	if errors.As(err, &apiErr) {
		return classify(ProviderOpenRouter, apiErr.HTTPStatusCode, err)
	}
	return classify(ProviderOpenRouter, 0, err)
}

func openRouterRole(role platform.MessageRole) string {
	if role == platform.MessageRoleAssistant {
		return openrouter.ChatMessageRoleAssistant
	}
	return openrouter.ChatMessageRoleUser
}
