package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"page-insights-backend/internal/infrastructure/queue"
	"page-insights-backend/pkg/container"
	"page-insights-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	appContainer, err := container.NewContainer(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer appContainer.Cleanup()

	cfg := loadWorkerConfig(appContainer)

	handlers := initializeHandlers(appContainer, cfg)
	srv := setupAsynqServer(cfg, handlers)

	// The scheduler feeds the recurring refresh scan into the queue the
	// server consumes.
	scheduler := queue.NewScheduler(
		cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RefreshScanCron)
	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("Worker stopped")
}
