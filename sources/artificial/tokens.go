package artificial

import (
	"relaybot/sources/memory"
	"relaybot/sources/tracing"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates the prompt size of a request. A counter without an encoding counts nothing.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

func NewTokenCounter(config *AIConfig, log *tracing.Logger) *TokenCounter {
	encoding, err := tiktoken.GetEncoding(config.Encoding)
	if err != nil {
		log.W("Token counting disabled, encoding unavailable", "encoding", config.Encoding, tracing.InnerError, err)
		return &TokenCounter{}
	}
	return &TokenCounter{encoding: encoding}
}

func (x *TokenCounter) Enabled() bool {
	return x != nil && x.encoding != nil
}

func (x *TokenCounter) Count(text string) int {
	if !x.Enabled() {
		return 0
	}
	return len(x.encoding.Encode(text, nil, nil))
}

func (x *TokenCounter) CountRequest(system string, turns []memory.Turn) int {
	if !x.Enabled() {
		return 0
	}
	total := x.Count(system)
	for _, turn := range turns {
		total += x.Count(turn.Content)
	}
	return total
}
