// Package bootstrap connects the runtime dependencies shared by the server
// and the command line tools.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rewear/internal/cache"
	"rewear/internal/config"
	"rewear/internal/database"
	"rewear/internal/seed"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo writes the demo community into an empty store.
	SeedDemo bool
	// ExtraUsers adds generated members on top of the demo community.
	ExtraUsers int
}

// OptionsFromConfig derives Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{SeedDemo: cfg.SeedDemo, ExtraUsers: cfg.SeedExtraUsers}
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The Redis client is nil when REDIS_URL is unset or unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.InitRedis(cfg.RedisURL)

	if opts.SeedDemo {
		if _, err := seed.Seed(ctx, db, seed.Options{ExtraUsers: opts.ExtraUsers}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
