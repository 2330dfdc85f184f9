package config

import (
	"time"

	"page-insights-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig builds the pool configuration consumed by the
// database infrastructure layer.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	return &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		Username: getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "pageinsights"),

		MaxConns:          int32(getEnvInt("DB_MAX_CONNS", 25)),
		MinConns:          int32(getEnvInt("DB_MIN_CONNS", 5)),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     getEnvInt("DB_MAX_RETRIES", 4),
		RetryDelay:     getEnvDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}, nil
}
