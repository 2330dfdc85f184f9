package main

import (
	"github.com/hibiken/asynq"

	pageJob "page-insights-backend/internal/domains/page/job"
	"page-insights-backend/internal/shared"
	"page-insights-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	generateSummary *pageJob.GenerateSummaryHandler
	refreshPage     *pageJob.RefreshPageHandler
	refreshScan     *pageJob.RefreshScanHandler
}

func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	return &HandlerRegistry{
		generateSummary: pageJob.NewGenerateSummaryHandler(c.AnalyticsService),
		refreshPage:     pageJob.NewRefreshPageHandler(c.AcquisitionService),
		refreshScan: pageJob.NewRefreshScanHandler(
			c.PageRepo, c.Enqueuer, cfg.RefreshMaxAge, cfg.RefreshBatch),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeGenerateSummary, h.generateSummary.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshPage, h.refreshPage.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshScan, h.refreshScan.ProcessTask)
}
