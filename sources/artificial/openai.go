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

	"github.com/sashabaranov/go-openai"
)

func NewOpenAIClient(client *http.Client, config *AIConfig) *openai.Client {
	openaiConfig := openai.DefaultConfig(config.OpenAIToken)
	openaiConfig.HTTPClient = client
	return openai.NewClientWithConfig(openaiConfig)
}

type OpenAICompleter struct {
	client  *openai.Client
	config  *AIConfig
	tokens  *TokenCounter
	metrics *metrics.MetricsService
}

func NewOpenAICompleter(client *openai.Client, config *AIConfig, tokens *TokenCounter, metrics *metrics.MetricsService) *OpenAICompleter {
	return &OpenAICompleter{client: client, config: config, tokens: tokens, metrics: metrics}
}

func (x *OpenAICompleter) Complete(ctx context.Context, log *tracing.Logger, system string, turns []memory.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{Role: openAIRole(turn.Role), Content: turn.Content})
	}

	request := openai.ChatCompletionRequest{Model: x.config.Model, Messages: messages}

	log = log.With(tracing.AiKind, "openai/chat", tracing.AiModel, request.Model)
	promptTokens := x.tokens.CountRequest(system, turns)
	log.I("ai requested", tracing.AiTokens, promptTokens, tracing.HistoryLength, len(turns))

	start := time.Now()
	response, err := tracing.ReportExecutionForRE(log, func() (openai.ChatCompletionResponse, error) {
		return x.client.CreateChatCompletion(ctx, request)
	}, func(l *tracing.Logger) {
		l.D("ai responded")
	})
	x.metrics.RecordAIRequestDuration(time.Since(start), request.Model)

	if err != nil {
		providerErr := classifyOpenAI(err)
		x.metrics.RecordProviderError(providerErr.Kind.String())
		log.E("ai failed", tracing.AiFailure, providerErr.Kind.String(), tracing.InnerError, err)
		return "", providerErr
	}

	if len(response.Choices) == 0 {
		x.metrics.RecordProviderError(Fatal.String())
		return "", &ProviderError{Kind: Fatal, Provider: ProviderOpenAI, Err: errEmptyCompletion}
	}

	x.metrics.RecordPromptTokens(response.Usage.PromptTokens, request.Model)
	x.metrics.RecordCompletionTokens(response.Usage.CompletionTokens, request.Model)
	log.I("ai completed", tracing.AiTokens, response.Usage.TotalTokens)

	return response.Choices[0].Message.Content, nil
}

func classifyOpenAI(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classify(ProviderOpenAI, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify(ProviderOpenAI, reqErr.HTTPStatusCode, err)
	}
	return classify(ProviderOpenAI, 0, err)
}

func openAIRole(role platform.MessageRole) string {
	if role == platform.MessageRoleAssistant {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}
