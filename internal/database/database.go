// Package database opens the catalog store and migrates its schema.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rewear/internal/config"
	"rewear/internal/middleware"
	"rewear/internal/models"
)

// MemoryDSN is an in-memory SQLite database private to one connection.
const MemoryDSN = ":memory:"

// IsMemory reports whether cfg selects an in-memory SQLite store, whose
// contents vanish when the process exits.
func IsMemory(cfg *config.Config) bool {
	if cfg.DBDriver == config.DriverPostgres {
		return false
	}
	dsn := strings.TrimSpace(cfg.DBDSN)
	return dsn == "" || strings.Contains(dsn, MemoryDSN) || strings.Contains(dsn, "mode=memory")
}

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Item{},
		&models.SwapRequest{},
		&models.FeedPost{},
	}
}

// Connect opens the database selected by cfg, applies the pool settings and
// migrates the schema outside production.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = MemoryDSN
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	middleware.Logger.Info("Database connected successfully", "driver", db.Dialector.Name())

	if err := configurePool(db, cfg.DBDriver); err != nil {
		return nil, err
	}

	// An in-memory store always starts empty, so it is migrated in every env.
	if !cfg.IsProduction() || cfg.DBDriver == config.DriverSQLite {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		middleware.Logger.Info("Database migration completed")
	}

	return db, nil
}

// Open opens a gorm connection with the slog-backed logger.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(middleware.Logger),
	})
}

// OpenMemory opens and migrates a fresh in-memory SQLite store.
func OpenMemory() (*gorm.DB, error) {
	db, err := Open(sqlite.Open(MemoryDSN))
	if err != nil {
		return nil, err
	}
	if err := configurePool(db, config.DriverSQLite); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func configurePool(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql.DB: %w", err)
	}
	if driver == config.DriverSQLite {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return nil
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

// Ping checks that the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
