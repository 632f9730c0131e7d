package artificial

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{429, RateLimited},
		{500, Transient},
		{502, Transient},
		{503, Transient},
		{408, Transient},
		{400, Fatal},
		{401, Fatal},
		{404, Fatal},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, kindForStatus(c.status), "status %d", c.status)
	}
}

func TestClassifyWithoutStatus(t *testing.T) {
	assert.Equal(t, Transient, classify(ProviderOpenAI, 0, fmt.Errorf("post: %w", context.DeadlineExceeded)).Kind)
	assert.Equal(t, Transient, classify(ProviderOpenAI, 0, &net.OpError{Op: "dial", Err: errors.New("connection refused")}).Kind)
	assert.Equal(t, Fatal, classify(ProviderOpenAI, 0, errors.New("boom")).Kind)
}

func TestProviderErrorHelpers(t *testing.T) {
	limited := fmt.Errorf("wrapped: %w", &ProviderError{Kind: RateLimited, Provider: ProviderOpenAI, StatusCode: 429, Err: errors.New("slow down")})

	assert.True(t, IsRateLimited(limited))
	assert.Equal(t, RateLimited, KindOf(limited))
	assert.Equal(t, Fatal, KindOf(errors.New("plain")))
	assert.Contains(t, limited.Error(), "http 429")
	assert.Equal(t, "rate_limited", RateLimited.String())
}
