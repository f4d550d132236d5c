package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"behavior-go/internal/config"
	logging "behavior-go/internal/logging"
	"behavior-go/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the archive database named by cfg and migrates the
// archive tables. Supported drivers are "sqlite" and "postgres".
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormZapLogger(log, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}

	log.Info("Archive connection established", zap.String("driver", cfg.Driver))
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Archive migrations completed")
	return db, nil
}

// Migrate creates or updates the archive tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.SessionRecord{},
		&models.StimulusRecord{},
		&models.WeekRecord{},
	); err != nil {
		return fmt.Errorf("failed to run archive migrations: %w", err)
	}
	return nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite archive needs database.path")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("could not create archive directory: %w", err)
		}
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported archive driver %q", cfg.Driver)
	}
}
