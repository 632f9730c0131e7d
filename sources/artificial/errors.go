package artificial

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type ErrorKind int

const (
	Fatal ErrorKind = iota
	Transient
	RateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case RateLimited:
		return "rate_limited"
	case Transient:
		return "transient"
	default:
		return "fatal"
	}
}

// ProviderError is the only error a Completer returns for a failed call.
type ProviderError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s completion failed (%s, http %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s completion failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func IsRateLimited(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Kind == RateLimited
}

func KindOf(err error) ErrorKind {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Kind
	}
	return Fatal
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return RateLimited
	case status == http.StatusRequestTimeout, status >= http.StatusInternalServerError:
		return Transient
	default:
		return Fatal
	}
}

// classify handles the failures every SDK shares: deadlines, cancellation and the network.
func classify(provider string, status int, err error) *ProviderError {
	if status != 0 {
		return &ProviderError{Kind: kindForStatus(status), Provider: provider, StatusCode: status, Err: err}
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &ProviderError{Kind: Transient, Provider: provider, Err: err}
	case errors.As(err, &netErr):
		return &ProviderError{Kind: Transient, Provider: provider, Err: err}
	default:
		return &ProviderError{Kind: Fatal, Provider: provider, Err: err}
	}
}
