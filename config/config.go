// Package config centralizes environment-based configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Store   StoreConfig
	Limiter LimiterConfig
}

type StoreConfig struct {
	// Type selects the backend: memory, redis or postgres.
	Type        string
	RedisAddr   string
	PostgresDSN string
}

type LimiterConfig struct {
	EpochLength time.Duration
	// Limits seeds per-subject net limits at startup.
	Limits map[string]uint64
}

func Load() (Config, error) {
	_ = godotenv.Load()

	storeType := strings.ToLower(getEnv("FLOWLIMIT_STORE", "memory"))
	switch storeType {
	case "memory", "redis", "postgres":
	default:
		return Config{}, fmt.Errorf("unknown store type %q", storeType)
	}

	epoch, err := time.ParseDuration(getEnv("FLOWLIMIT_EPOCH", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid FLOWLIMIT_EPOCH: %w", err)
	}
	if epoch <= 0 {
		return Config{}, fmt.Errorf("FLOWLIMIT_EPOCH must be positive, got %s", epoch)
	}

	limits, err := parseLimits(os.Getenv("FLOWLIMIT_LIMITS"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Store: StoreConfig{
			Type:        storeType,
			RedisAddr:   getEnv("FLOWLIMIT_REDIS_ADDR", "localhost:6379"),
			PostgresDSN: os.Getenv("FLOWLIMIT_POSTGRES_DSN"),
		},
		Limiter: LimiterConfig{
			EpochLength: epoch,
			Limits:      limits,
		},
	}, nil
}

// parseLimits reads "subjectA=100,subjectB=500" pairs.
func parseLimits(raw string) (map[string]uint64, error) {
	limits := make(map[string]uint64)
	if strings.TrimSpace(raw) == "" {
		return limits, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid FLOWLIMIT_LIMITS entry %q", pair)
		}
		value, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limit for subject %q: %w", parts[0], err)
		}
		limits[parts[0]] = value
	}
	return limits, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
