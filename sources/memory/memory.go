package memory

import (
	"context"
	"relaybot/sources/configuration"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"

	"github.com/redis/go-redis/v9"
)

type Turn struct {
	Role    platform.MessageRole `json:"role"`
	Content string               `json:"content"`
}

func UserTurn(content string) Turn {
	return Turn{Role: platform.MessageRoleUser, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: platform.MessageRoleAssistant, Content: content}
}

// Store keeps the ordered conversation of every user. The system instruction never lives here.
type Store interface {
	Append(ctx context.Context, userID int64, turn Turn) error
	// Trim drops turns from the oldest end until at most max remain.
	Trim(ctx context.Context, userID int64, max int) error
	Snapshot(ctx context.Context, userID int64) ([]Turn, error)
}

const (
	BackendLocal = "local"
	BackendRedis = "redis"
)

func NewStore(config *configuration.Config, client *redis.Client, log *tracing.Logger) Store {
	if config.Memory.Backend == BackendRedis {
		log.I("Conversation memory kept in redis", "idle_ttl", config.Memory.IdleTTL.String())
		return NewRedisStore(client, config.Memory.IdleTTL, log)
	}

	log.I("Conversation memory kept in process")
	return NewLocalStore()
}
