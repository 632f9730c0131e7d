package persistence

import (
	"relaybot/sources/configuration"
	"relaybot/sources/tracing"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds a lazily connecting client. It is only dialed when something uses it.
func NewRedis(config *configuration.Config, log *tracing.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:                  redisAddr(config.Redis),
		Password:              config.Redis.Password,
		DB:                    config.Redis.DB,
		MaxRetries:            config.Redis.MaxRetries,
		DialTimeout:           config.Redis.DialTimeout,
		ContextTimeoutEnabled: true,
	})

	log.I("Redis client initialized successfully")
	return rdb
}
