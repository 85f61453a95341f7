package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/telemetry"
	"github.com/comitanigiacomo/kyool-companion/internal/logger"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	APIURL     string
	APITimeout time.Duration
	Port       string

	StorageDriver string
	SQLitePath    string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	WaterDailyCap  int
	WaterDailyGoal int
	UserTimezone   string

	IDToken        string
	StreakCacheTTL time.Duration

	RateLimit       int
	RateLimitWindow time.Duration

	Log       logger.Config
	Telemetry telemetry.Config
}

// Load reads .env files when present, then the process environment.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	return &Config{
		APIURL:     getEnv("KYOOL_API_URL", "http://localhost:8000"),
		APITimeout: getDurationEnv("API_TIMEOUT", 10*time.Second),
		Port:       getEnv("PORT", "8080"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "kyool.db"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		WaterDailyCap:  getIntEnv("WATER_DAILY_CAP", 8),
		WaterDailyGoal: getIntEnv("WATER_DAILY_GOAL", 8),
		UserTimezone:   getEnv("USER_TIMEZONE", ""),

		IDToken:        getEnv("KYOOL_ID_TOKEN", ""),
		StreakCacheTTL: getDurationEnv("STREAK_CACHE_TTL", time.Minute),

		RateLimit:       getIntEnv("RATE_LIMIT", 120),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		Log: logger.Config{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Telemetry: telemetry.Config{
			Enabled:  getBoolEnv("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_ENDPOINT", ""),
			Insecure: getBoolEnv("OTEL_INSECURE", false),
		},
	}
}

// RedisEnabled reports whether a redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
