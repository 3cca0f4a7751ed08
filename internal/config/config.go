// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers understood by DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                   string  `mapstructure:"PORT"`
	Env                    string  `mapstructure:"APP_ENV"`
	DBDriver               string  `mapstructure:"DB_DRIVER"`
	DBDSN                  string  `mapstructure:"DB_DSN"`
	DBHost                 string  `mapstructure:"DB_HOST"`
	DBPort                 string  `mapstructure:"DB_PORT"`
	DBUser                 string  `mapstructure:"DB_USER"`
	DBPassword             string  `mapstructure:"DB_PASSWORD"`
	DBName                 string  `mapstructure:"DB_NAME"`
	DBSSLMode              string  `mapstructure:"DB_SSLMODE"`
	RedisURL               string  `mapstructure:"REDIS_URL"`
	AllowedOrigins         string  `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags           string  `mapstructure:"FEATURE_FLAGS"`
	SeedDemo               bool    `mapstructure:"SEED_DEMO"`
	SeedExtraUsers         int     `mapstructure:"SEED_EXTRA_USERS"`
	SwipeSessionTTLMinutes int     `mapstructure:"SWIPE_SESSION_TTL_MINUTES"`
	TracingEnabled         bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter        string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint           string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio     float64 `mapstructure:"TRACING_SAMPLE_RATIO"`
}

var defaults = map[string]interface{}{
	"PORT":                      "8080",
	"APP_ENV":                   "development",
	"DB_DRIVER":                 DriverSQLite,
	"DB_DSN":                    "",
	"DB_HOST":                   "localhost",
	"DB_PORT":                   "5432",
	"DB_USER":                   "rewear",
	"DB_PASSWORD":               "rewear",
	"DB_NAME":                   "rewear",
	"DB_SSLMODE":                "disable",
	"REDIS_URL":                 "",
	"ALLOWED_ORIGINS":           "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173",
	"FEATURE_FLAGS":             "swipe_points=on,leaderboard_cache=on",
	"SEED_DEMO":                 true,
	"SEED_EXTRA_USERS":          0,
	"SWIPE_SESSION_TTL_MINUTES": 30,
	"TRACING_ENABLED":           false,
	"TRACING_EXPORTER":          "stdout",
	"OTLP_ENDPOINT":             "localhost:4318",
	"TRACING_SAMPLE_RATIO":      1.0,
}

// LoadConfig loads application configuration from .env files, config files
// and environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// The base file is optional.
	_ = v.ReadInConfig()

	env := v.GetString("APP_ENV")
	if env != "development" && env != "test" && env != "" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("unable to read profile config 'config.%s.yml': %w", env, err)
			}
		} else {
			slog.Info("Loaded profile-specific configuration", slog.String("file", "config."+env+".yml"))
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// SwipeSessionTTL returns the idle timeout of swipe sessions.
func (c *Config) SwipeSessionTTL() time.Duration {
	return time.Duration(c.SwipeSessionTTLMinutes) * time.Minute
}

// PostgresDSN returns DB_DSN or builds one from the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Validate ensures that required configuration values are present and consistent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}

	if c.SwipeSessionTTLMinutes < 0 {
		return errors.New("SWIPE_SESSION_TTL_MINUTES must not be negative")
	}
	if c.SeedExtraUsers < 0 {
		return errors.New("SEED_EXTRA_USERS must not be negative")
	}
	if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
		return errors.New("TRACING_SAMPLE_RATIO must be between 0 and 1")
	}
	if c.TracingEnabled && c.TracingExporter != "stdout" && c.TracingExporter != "otlp" {
		return fmt.Errorf("TRACING_EXPORTER must be stdout or otlp, got %q", c.TracingExporter)
	}

	if c.IsProduction() {
		if c.DBDriver == DriverPostgres && c.DBDSN == "" && (c.DBPassword == "rewear" || c.DBPassword == "") {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBDriver == DriverPostgres && (c.DBSSLMode == "disable" || c.DBSSLMode == "") && c.DBDSN == "" {
			return errors.New("DB_SSLMODE must not be disabled in production")
		}
		if c.AllowedOrigins == "*" {
			slog.Warn("ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}
