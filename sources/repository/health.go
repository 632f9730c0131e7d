package repository

import (
	"context"
	"errors"
	"relaybot/sources/configuration"
	"relaybot/sources/memory"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrDatabaseDisabled = errors.New("journal database disabled")

type HealthRepository struct {
	db     *gorm.DB
	redis  *redis.Client
	config *configuration.Config
}

func NewHealthRepository(db *gorm.DB, redis *redis.Client, config *configuration.Config) *HealthRepository {
	return &HealthRepository{db: db, redis: redis, config: config}
}

func (x *HealthRepository) CheckDatabaseHealth(logger *tracing.Logger) error {
	if x.db == nil {
		return ErrDatabaseDisabled
	}
	defer tracing.ProfilePoint(logger, "Health check database completed", "repository.health.check.database")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 1*time.Second)
	defer cancel()

	sqlDB, err := x.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.E("Database health check failed", tracing.InnerError, err)
		return err
	}

	logger.D("Database health check passed")
	return nil
}

func (x *HealthRepository) CheckRedisHealth(logger *tracing.Logger) error {
	defer tracing.ProfilePoint(logger, "Health check redis completed", "repository.health.check.redis")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 1*time.Second)
	defer cancel()

	err := x.redis.Ping(ctx).Err()
	if err != nil {
		logger.E("Redis health check failed", tracing.InnerError, err)
		return err
	}

	logger.D("Redis health check passed")
	return nil
}

// Check runs every probe relevant to the current configuration, keyed by component.
func (x *HealthRepository) Check(logger *tracing.Logger) map[string]error {
	results := map[string]error{}
	if x.db != nil {
		results["database"] = x.CheckDatabaseHealth(logger)
	}
	if x.config.Memory.Backend == memory.BackendRedis {
		results["redis"] = x.CheckRedisHealth(logger)
	}
	return results
}
