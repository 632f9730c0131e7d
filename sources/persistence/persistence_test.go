package persistence

import (
	"relaybot/sources/configuration"
	"relaybot/sources/tracing"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := postgresDSN(configuration.DatabaseConfig{
		Host: "db", Port: "5432", User: "relay", Password: "secret", DBName: "journal", SSLMode: "disable", TimeZone: "UTC",
	})
	assert.Equal(t, "host=db user=relay password=secret dbname=journal port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "redis:6379", redisAddr(configuration.RedisConfig{Host: "redis", Port: 6379}))
}

func TestDisabledDatabaseIsNil(t *testing.T) {
	db, err := NewPostgresDatabase(&configuration.Config{}, tracing.NewDiscardLogger())
	require.NoError(t, err)
	assert.Nil(t, db)
}
