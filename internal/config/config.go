package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export worker
	ExportDir       string
	ConsumeInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8082"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/lifeplan.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "lifeplan"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "projection_snapshots"),

		ExportDir:       getEnv("EXPORT_DIR", "./data/exports"),
		ConsumeInterval: getEnvDuration("CONSUME_INTERVAL", 30*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.SQLiteDBPath) == "" {
		errs = append(errs, "sqlite db path must not be empty")
	}

	if c.AMQPURL != "" {
		if strings.TrimSpace(c.AMQPExchange) == "" {
			errs = append(errs, "amqp exchange must not be empty when AMQP is enabled")
		}
		if strings.TrimSpace(c.AMQPQueue) == "" {
			errs = append(errs, "amqp queue must not be empty when AMQP is enabled")
		}
	}

	if strings.TrimSpace(c.ExportDir) == "" {
		errs = append(errs, "export dir must not be empty")
	}
	if c.ConsumeInterval <= 0 {
		errs = append(errs, "consume interval must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
