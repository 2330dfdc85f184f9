package main

import (
	"log"
	"time"

	"page-insights-backend/pkg/container"
)

// Config holds the worker-specific settings, derived from the shared
// application configuration.
type Config struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	RefreshMaxAge   time.Duration
	RefreshScanCron string
	RefreshBatch    int
}

func loadWorkerConfig(c *container.Container) *Config {
	cfg := &Config{
		RedisAddr:       c.Config.Redis.Host,
		RedisPassword:   c.Config.Redis.Password,
		RedisDB:         c.Config.Redis.DB,
		Concurrency:     c.Config.Worker.Concurrency,
		RefreshMaxAge:   c.Config.Worker.RefreshMaxAge,
		RefreshScanCron: c.Config.Worker.RefreshScanCron,
		RefreshBatch:    c.Config.Worker.RefreshBatch,
	}

	log.Printf("[Config] Redis: %s, Concurrency: %d, RefreshMaxAge: %s",
		cfg.RedisAddr, cfg.Concurrency, cfg.RefreshMaxAge)

	return cfg
}
