package container

import (
	"context"
	"fmt"

	"page-insights-backend/internal/config"
	"page-insights-backend/internal/domains/page"
	pageHandler "page-insights-backend/internal/domains/page/handler"
	pageRepo "page-insights-backend/internal/domains/page/repository"
	pageService "page-insights-backend/internal/domains/page/service"
	infraCache "page-insights-backend/internal/infrastructure/cache"
	"page-insights-backend/internal/infrastructure/database"
	"page-insights-backend/internal/infrastructure/insight"
	"page-insights-backend/internal/infrastructure/linkedin"
	"page-insights-backend/internal/infrastructure/queue"
	"page-insights-backend/internal/infrastructure/storage"
	"page-insights-backend/pkg/cache"
	"page-insights-backend/pkg/logger"
)

// Container holds the full dependency graph. Initialization order matters:
// config, then infrastructure, then repositories, services and handlers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB       *database.PostgresDB
	Cache    cache.Cache
	Enqueuer *queue.Enqueuer
	Media    *storage.MinIOStorage // nil when MinIO is unreachable

	// Collaborators
	LiveProvider page.LiveProvider
	Summarizer   page.Summarizer

	// Domain
	PageRepo           page.Repository
	AcquisitionService page.AcquisitionService
	QueryService       page.QueryService
	AnalyticsService   page.AnalyticsService

	// HTTP
	PageHandler *pageHandler.PageHandler
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initCache(ctx); err != nil {
		return nil, err
	}
	c.initQueue()
	c.initMedia()
	if err := c.initSummarizer(ctx); err != nil {
		return nil, err
	}
	c.initDomain()

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pageRepo.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initCache(ctx context.Context) error {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if err := redisCache.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	return nil
}

func (c *Container) initQueue() {
	c.Enqueuer = queue.NewEnqueuer(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
}

// initMedia is best effort: a missing MinIO deployment degrades to no
// media mirroring instead of refusing to boot.
func (c *Container) initMedia() {
	media, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		logger.Warn("minio unavailable, media mirroring disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	c.Media = media
}

func (c *Container) initSummarizer(ctx context.Context) error {
	summarizer, err := insight.NewGeminiSummarizer(ctx, c.Config.Gemini)
	if err != nil {
		return fmt.Errorf("failed to init summarizer: %w", err)
	}
	if !summarizer.Enabled() {
		logger.Warn("gemini api key not set, analytics summaries disabled", nil)
	}
	c.Summarizer = summarizer
	return nil
}

func (c *Container) initDomain() {
	c.LiveProvider = linkedin.NewClient(c.Config.LinkedIn)
	c.PageRepo = pageRepo.NewPostgresRepository(c.DB.Pool)

	var media page.MediaStore
	if c.Media != nil {
		media = c.Media
	}

	c.AcquisitionService = pageService.NewAcquisitionService(
		c.PageRepo,
		c.LiveProvider,
		media,
		c.Cache,
		page.SystemClock{},
		nil,
		pageService.AcquisitionOptions{
			FetchTimeout:     c.Config.LinkedIn.FetchTimeout,
			PostsPerPage:     c.Config.Synthesis.PostsPerPage,
			FollowersPerPage: c.Config.Synthesis.FollowersPerPage,
			EmployeesPerPage: c.Config.Synthesis.EmployeesPerPage,
			CommentsPerPost:  c.Config.Synthesis.CommentsPerPost,
		},
	)
	c.QueryService = pageService.NewQueryService(c.PageRepo, c.Cache, c.Config.Cache.PageDetailTTL)
	c.AnalyticsService = pageService.NewAnalyticsService(
		c.PageRepo, c.Cache, c.Summarizer, c.Enqueuer,
		page.SystemClock{}, c.Config.Cache.AnalyticsTTL)

	c.PageHandler = pageHandler.NewPageHandler(
		c.AcquisitionService, c.QueryService, c.AnalyticsService)
}

// Cleanup releases held connections, in reverse initialization order.
func (c *Container) Cleanup() {
	if c.Enqueuer != nil {
		if err := c.Enqueuer.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
