package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"page-insights-backend/internal/shared/middleware"
	"page-insights-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPageRoutes(v1, c)
	}

	return router
}

func setupPageRoutes(rg *gin.RouterGroup, c *container.Container) {
	pages := rg.Group("/pages")
	{
		pages.POST("/acquire", c.PageHandler.Acquire)
		pages.GET("", c.PageHandler.List)
		pages.GET("/:page_id", c.PageHandler.Get)
		pages.GET("/:page_id/posts", c.PageHandler.ListPosts)
		pages.GET("/:page_id/posts/:post_id/comments", c.PageHandler.ListComments)
		pages.GET("/:page_id/followers", c.PageHandler.ListFollowers)
		pages.GET("/:page_id/employees", c.PageHandler.ListEmployees)
		pages.GET("/:page_id/analytics", c.PageHandler.GetAnalytics)
		pages.POST("/:page_id/summary", c.PageHandler.RequestSummary)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			cacheStatus = "down"
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
