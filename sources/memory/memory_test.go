package memory

import (
	"context"
	"fmt"
	"relaybot/sources/configuration"
	"relaybot/sources/tracing"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour, tracing.NewDiscardLogger()), server
}

func stores(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStore(t)
	return map[string]Store{
		"local": NewLocalStore(),
		"redis": redisStore,
	}
}

func TestTrimKeepsMostRecentInOrder(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 25; i++ {
				require.NoError(t, store.Append(ctx, 1, UserTurn(fmt.Sprintf("m%d", i))))
			}

			require.NoError(t, store.Trim(ctx, 1, 20))

			turns, err := store.Snapshot(ctx, 1)
			require.NoError(t, err)
			require.Len(t, turns, 20)
			for i, turn := range turns {
				assert.Equal(t, fmt.Sprintf("m%d", i+6), turn.Content)
			}
		})
	}
}

func TestTrimBelowBoundIsNoop(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, 1, UserTurn("hi")))
			require.NoError(t, store.Append(ctx, 1, AssistantTurn("hello")))

			require.NoError(t, store.Trim(ctx, 1, 20))

			turns, err := store.Snapshot(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []Turn{UserTurn("hi"), AssistantTurn("hello")}, turns)
		})
	}
}

func TestConsecutiveUserTurnsAllowed(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, 1, UserTurn("first")))
			require.NoError(t, store.Append(ctx, 1, UserTurn("retry")))
			require.NoError(t, store.Append(ctx, 1, AssistantTurn("answer")))

			turns, err := store.Snapshot(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []Turn{UserTurn("first"), UserTurn("retry"), AssistantTurn("answer")}, turns)
		})
	}
}

func TestUsersAreSeparated(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, 1, UserTurn("one")))
			require.NoError(t, store.Append(ctx, 2, UserTurn("two")))

			turns, err := store.Snapshot(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, []Turn{UserTurn("two")}, turns)

			empty, err := store.Snapshot(ctx, 3)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestLocalSnapshotIsACopy(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, 1, UserTurn("original")))

	turns, err := store.Snapshot(ctx, 1)
	require.NoError(t, err)
	turns[0].Content = "mutated"

	again, err := store.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Content)
}

func TestRedisStoreExpiresIdleConversations(t *testing.T) {
	store, server := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, 9, UserTurn("hello")))
	assert.Equal(t, time.Hour, server.TTL("conversation:9"))

	server.FastForward(2 * time.Hour)

	turns, err := store.Snapshot(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestNewStoreSelectsBackend(t *testing.T) {
	config := &configuration.Config{}
	config.Memory.Backend = BackendLocal
	assert.IsType(t, &LocalStore{}, NewStore(config, nil, tracing.NewDiscardLogger()))

	config.Memory.Backend = BackendRedis
	client := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	assert.IsType(t, &RedisStore{}, NewStore(config, client, tracing.NewDiscardLogger()))
}
