package persistence

import (
	"relaybot/sources/configuration"
	"relaybot/sources/persistence/entities"
	"relaybot/sources/tracing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDatabase returns nil when the journal database is disabled.
func NewPostgresDatabase(config *configuration.Config, log *tracing.Logger) (*gorm.DB, error) {
	if !config.Database.Enabled {
		log.I("Journal database disabled")
		return nil, nil
	}

	gormlogger := logger.New(
		&gormtracer{logger: log},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(postgresDSN(config.Database)), &gorm.Config{Logger: gormlogger})
	if err != nil {
		log.E("Failed to connect to database", tracing.InnerError, err)
		return nil, err
	}

	sqldb, err := db.DB()
	if err != nil {
		log.E("Failed to get underlying sql.DB", tracing.InnerError, err)
		return nil, err
	}

	sqldb.SetMaxOpenConns(10)
	sqldb.SetMaxIdleConns(2)
	sqldb.SetConnMaxLifetime(2 * time.Hour)
	sqldb.SetConnMaxIdleTime(30 * time.Minute)

	log.I("Database initialized successfully")
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(entities.All()...)
}
