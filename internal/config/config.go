package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	AppEnv string
	Port   string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	UseRedisCache bool

	ReportLinkSecret string

	SettlementInterval time.Duration
	MinimumAirtime     decimal.Decimal
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		PGHost:           getEnv("PG_HOST", "localhost"),
		PGPort:           getEnv("PG_PORT", "5432"),
		PGUser:           getEnv("PG_USER", "aeroclub"),
		PGPassword:       getEnv("PG_PASSWORD", ""),
		PGDatabase:       getEnv("PG_DB", "logbook"),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		UseRedisCache:    getEnv("CACHE_BACKEND", "memory") == "redis",
		ReportLinkSecret: getEnv("REPORT_LINK_SECRET", ""),
	}

	intervalMin, err := strconv.Atoi(getEnv("SETTLEMENT_INTERVAL_MINUTES", "60"))
	if err != nil || intervalMin <= 0 {
		return nil, fmt.Errorf("invalid SETTLEMENT_INTERVAL_MINUTES: %v", err)
	}
	cfg.SettlementInterval = time.Duration(intervalMin) * time.Minute

	minAirtime, err := decimal.NewFromString(getEnv("MINIMUM_AIRTIME_HOURS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MINIMUM_AIRTIME_HOURS: %w", err)
	}
	cfg.MinimumAirtime = minAirtime

	return cfg, nil
}

// PostgresDSN builds the connection string shared by sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
