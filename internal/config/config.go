package config

import (
	"os"
	"strconv"
	"time"

	"skyfare/internal/cache"
	"skyfare/internal/database"
	"skyfare/internal/messaging"
	"skyfare/internal/payment"
	"skyfare/internal/search"
)

// Config holds the full application configuration.
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Database database.Config
	Cache    cache.Config
	NATS     messaging.Config
	Search   search.Config
	Payment  payment.Config
}

// Load reads configuration from environment variables.
//
// DB_HOST, VALKEY_ADDR, NATS_URL and ELASTICSEARCH_URL are all optional: when
// unset, the server runs with in-memory stores and without the corresponding
// subsystem, which is the mode the demo and the test suites use.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "skyfare"),
			Password:           getEnv("DB_PASSWORD", "skyfare"),
			DBName:             getEnv("DB_NAME", "skyfare"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Cache: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SEC", 60)) * time.Second,
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "skyfare"),
			ClientID:  getEnv("NATS_CLIENT_ID", "skyfare-api"),
		},

		Search: search.Config{
			URL:        getEnv("ELASTICSEARCH_URL", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "flights"),
			Username:   os.Getenv("ELASTICSEARCH_USERNAME"),
			Password:   os.Getenv("ELASTICSEARCH_PASSWORD"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},

		Payment: payment.Config{
			ProcessingDelay: time.Duration(getEnvInt("PAYMENT_DELAY_MS", 2000)) * time.Millisecond,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
