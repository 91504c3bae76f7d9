package db

import (
	"fmt"
	"log"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize sets up the database connection. A local sqlite file (WAL mode)
// is the default; when TURSO_DATABASE_URL is configured the same dialector
// runs on the libsql driver instead.
func Initialize(cfg *config.Config) error {
	var err error

	// Determine log level based on environment
	logLevel := logger.Info
	if cfg.Environment == "production" {
		logLevel = logger.Warn
	}

	var dialector gorm.Dialector
	if cfg.TursoDatabaseURL != "" {
		dsn := cfg.TursoDatabaseURL
		if cfg.TursoAuthToken != "" {
			dsn += "?authToken=" + cfg.TursoAuthToken
		}
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", DSN: dsn})
	} else {
		// Enable WAL mode for better concurrency support
		dialector = sqlite.Open(cfg.DBPath + "?_journal_mode=WAL")
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.TursoDatabaseURL != "" {
		log.Println("Database connection established (Turso/libsql)")
	} else {
		log.Println("Database connection established (WAL mode enabled)")
	}
	return nil
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
