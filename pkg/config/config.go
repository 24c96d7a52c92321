package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Database
	DatabaseURL string
	SQLitePath  string

	// Redis (confirmation locks; optional single-instance)
	RedisURL string

	// RabbitMQ (event publishing)
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxRetentionDays    int
	OutboxCleanupInterval  time.Duration
	OutboxProcessorEnabled bool

	// Scheduling: institution operating hours; exams must start at or
	// after DayStartHour and end at or before DayEndHour.
	DayStartHour int
	DayEndHour   int

	// Default exam duration in minutes when a proposal omits one.
	DefaultDurationMins int

	// CLI actor identity. Every mutating command runs as this person
	// unless overridden with the --actor and --role flags.
	ActorID    string
	ActorRole  string
	ActorGroup string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env if present; ignore when missing.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("EXAMSCHED_ENV", "development"),
		LogLevel: getEnv("EXAMSCHED_LOG_LEVEL", "info"),

		// No DATABASE_URL means local mode on a single-file database.
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("EXAMSCHED_SQLITE_PATH", defaultSQLitePath()),
		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:     getDurationEnv("OUTBOX_POLL_INTERVAL", time.Second),
		OutboxBatchSize:        getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxRetentionDays:    getIntEnv("OUTBOX_RETENTION_DAYS", 14),
		OutboxCleanupInterval:  getDurationEnv("OUTBOX_CLEANUP_INTERVAL", time.Hour),
		OutboxProcessorEnabled: getBoolEnv("OUTBOX_PROCESSOR_ENABLED", true),

		DayStartHour:        getIntEnv("EXAMSCHED_DAY_START", 8),
		DayEndHour:          getIntEnv("EXAMSCHED_DAY_END", 18),
		DefaultDurationMins: getIntEnv("EXAMSCHED_DEFAULT_DURATION", 120),

		ActorID:    getEnv("EXAMSCHED_ACTOR_ID", ""),
		ActorRole:  getEnv("EXAMSCHED_ACTOR_ROLE", ""),
		ActorGroup: getEnv("EXAMSCHED_ACTOR_GROUP", ""),
	}

	return cfg, nil
}

// IsLocalMode returns true when no server database is configured.
func (c *Config) IsLocalMode() bool {
	return c.DatabaseURL == ""
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "examsched.db"
	}
	return filepath.Join(home, ".examsched", "examsched.db")
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
