package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the full application configuration, populated from
// environment variables.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	LinkedIn  LinkedInConfig
	Gemini    GeminiConfig
	MinIO     MinIOConfig
	Worker    WorkerConfig
	Synthesis SynthesisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	PageDetailTTL time.Duration
	AnalyticsTTL  time.Duration
}

// LinkedInConfig drives the live-acquisition provider. The provider is the
// only component expected to block for tens of seconds, so its timeout is
// configured separately from server timeouts.
type LinkedInConfig struct {
	BaseURL       string
	ScraperAPIURL string
	ScraperAPIKey string // empty = direct fetch only
	UserAgent     string
	FetchTimeout  time.Duration
}

type GeminiConfig struct {
	APIKey string // empty = summaries disabled
	Model  string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type WorkerConfig struct {
	Concurrency     int
	RefreshMaxAge   time.Duration // pages older than this are re-acquired
	RefreshScanCron string
	RefreshBatch    int
}

// SynthesisConfig controls how much data the synthetic path produces per depth.
type SynthesisConfig struct {
	PostsPerPage     int
	FollowersPerPage int
	EmployeesPerPage int
	CommentsPerPost  int
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Page Insights API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pageinsights"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			PageDetailTTL: getEnvDuration("CACHE_PAGE_DETAIL_TTL", 5*time.Minute),
			AnalyticsTTL:  getEnvDuration("CACHE_ANALYTICS_TTL", 2*time.Minute),
		},
		LinkedIn: LinkedInConfig{
			BaseURL:       getEnv("LINKEDIN_BASE_URL", "https://www.linkedin.com"),
			ScraperAPIURL: getEnv("SCRAPERAPI_URL", "http://api.scraperapi.com"),
			ScraperAPIKey: getEnv("SCRAPERAPI_KEY", ""),
			UserAgent: getEnv("LINKEDIN_USER_AGENT",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
			FetchTimeout: getEnvDuration("LINKEDIN_FETCH_TIMEOUT", 30*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "pageinsights-media"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 10),
			RefreshMaxAge:   getEnvDuration("REFRESH_MAX_AGE", 24*time.Hour),
			RefreshScanCron: getEnv("REFRESH_SCAN_CRON", "@every 1h"),
			RefreshBatch:    getEnvInt("REFRESH_BATCH", 20),
		},
		Synthesis: SynthesisConfig{
			PostsPerPage:     getEnvInt("SYNTH_POSTS_PER_PAGE", 15),
			FollowersPerPage: getEnvInt("SYNTH_FOLLOWERS_PER_PAGE", 25),
			EmployeesPerPage: getEnvInt("SYNTH_EMPLOYEES_PER_PAGE", 20),
			CommentsPerPost:  getEnvInt("SYNTH_COMMENTS_PER_POST", 3),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable for the given environment.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Gemini.APIKey == "" {
			fmt.Println("WARNING: GEMINI_API_KEY not set - analytics summaries will be disabled")
		}
	}

	if c.Synthesis.PostsPerPage <= 0 {
		return fmt.Errorf("SYNTH_POSTS_PER_PAGE must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
