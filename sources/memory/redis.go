package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each conversation as a redis list, oldest turn at the head.
// Idle conversations expire after the configured TTL.
type RedisStore struct {
	redis   *redis.Client
	idleTTL time.Duration
	log     *tracing.Logger
}

func NewRedisStore(client *redis.Client, idleTTL time.Duration, log *tracing.Logger) *RedisStore {
	return &RedisStore{redis: client, idleTTL: idleTTL, log: log}
}

func (x *RedisStore) key(userID int64) string {
	return fmt.Sprintf("conversation:%d", userID)
}

func (x *RedisStore) Append(ctx context.Context, userID int64, turn Turn) error {
	defer tracing.ProfilePoint(x.log, "Conversation append completed", "memory.redis.append", tracing.UserId, userID)()

	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	key := x.key(userID)
	pipe := x.redis.TxPipeline()
	pipe.RPush(ctx, key, payload)
	if x.idleTTL > 0 {
		pipe.Expire(ctx, key, x.idleTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		x.log.E("Failed to append turn to redis", "key", key, tracing.InnerError, err)
		return err
	}
	return nil
}

func (x *RedisStore) Trim(ctx context.Context, userID int64, max int) error {
	defer tracing.ProfilePoint(x.log, "Conversation trim completed", "memory.redis.trim", tracing.UserId, userID)()

	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	key := x.key(userID)
	var err error
	if max <= 0 {
		err = x.redis.Del(ctx, key).Err()
	} else {
		err = x.redis.LTrim(ctx, key, int64(-max), -1).Err()
	}

	if err != nil {
		x.log.E("Failed to trim conversation in redis", "key", key, tracing.InnerError, err)
		return err
	}
	return nil
}

func (x *RedisStore) Snapshot(ctx context.Context, userID int64) ([]Turn, error) {
	defer tracing.ProfilePoint(x.log, "Conversation snapshot completed", "memory.redis.snapshot", tracing.UserId, userID)()

	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	key := x.key(userID)
	items, err := x.redis.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		x.log.E("Failed to read conversation from redis", "key", key, tracing.InnerError, err)
		return nil, err
	}

	turns := make([]Turn, 0, len(items))
	for _, item := range items {
		var turn Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			x.log.W("Failed to parse turn from redis, skipping", "key", key, tracing.InnerError, err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
