package external

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"relaybot/sources/configuration"
	"relaybot/sources/memory"
	"relaybot/sources/repository"
	"relaybot/sources/tracing"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOutsiders(t *testing.T, backend string) (*Outsiders, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	config := &configuration.Config{}
	config.Memory.Backend = backend
	config.Service = configuration.ServiceConfig{StartupPort: 10000, SystemMetricsPort: 10001, ApplicationMetricsPort: 10002}

	health := repository.NewHealthRepository(nil, client, config)
	return NewOutsiders(tracing.NewDiscardLogger(), NewOutsidersConfig(config), health), server
}

func TestHealthEndpoint(t *testing.T) {
	outsiders, _ := newOutsiders(t, memory.BackendLocal)
	assert.Equal(t, ":10000", outsiders.ss.Addr)
	assert.Equal(t, ":10002", outsiders.as.Addr)

	recorder := httptest.NewRecorder()
	outsiders.ss.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "relaybot", body["service"])
}

func TestReadinessReflectsRedis(t *testing.T) {
	outsiders, server := newOutsiders(t, memory.BackendRedis)

	recorder := httptest.NewRecorder()
	outsiders.ss.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	server.Close()

	recorder = httptest.NewRecorder()
	outsiders.ss.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
