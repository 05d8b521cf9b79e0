package database

import (
	"fmt"
	"log"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/pkg/config"
	"nailstudio/internal/pkg/logger"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open initializes the GORM connection for the configured driver.
// sqlite is used for local runs and tests; postgres points at the Supabase database.
func Open(cfg config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info(fmt.Sprintf("Successfully connected to %s database.", cfg.Driver))

	if err := AutoMigrate(db, cfg.Driver); err != nil {
		return nil, err
	}
	log.Info("Database schema migration completed.")
	return db, nil
}

func newGormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// AutoMigrate creates the tables this service owns. On postgres the appointments
// table belongs to the Supabase project the dashboard reads, so it is left alone.
func AutoMigrate(db *gorm.DB, driver string) error {
	if err := db.AutoMigrate(migrationModels(driver)...); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

func migrationModels(driver string) []interface{} {
	models := []interface{}{&entity.OAuthState{}, &entity.LineAccount{}}
	if driver != "postgres" {
		models = append(models, &entity.Appointment{})
	}
	return models
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	return sqlDB.Close()
}
