package database

import (
	"fmt"
	"time"

	"clinic-assistant/internal/config"
	"clinic-assistant/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Columns are timestamp without time zone and hold UTC wall-clock.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// Open connects to the database named by cfg.DatabaseURL. gorm's own
// logging is routed through logger at warn level.
func Open(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NowFunc: nowUTC,
		Logger: gormlogger.New(&logger, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates any missing tables. There is no versioned migration
// history; existing tables are only extended, never altered destructively.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
