package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/internal/shared"
	"page-insights-backend/pkg/logger"
)

// GenerateSummaryHandler runs AI summary generation off the request path.
type GenerateSummaryHandler struct {
	analytics page.AnalyticsService
}

func NewGenerateSummaryHandler(analytics page.AnalyticsService) *GenerateSummaryHandler {
	return &GenerateSummaryHandler{analytics: analytics}
}

func (h *GenerateSummaryHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SummaryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("summary payload unmarshal failed", err)
		return err
	}

	log.Info().
		Str("page_id", payload.PageID).
		Msg("Generating analytics summary")

	if err := h.analytics.GenerateSummary(ctx, payload.PageID); err != nil {
		// A deleted page is not worth retrying.
		if page.IsNotFound(err) {
			log.Warn().
				Str("page_id", payload.PageID).
				Msg("Page disappeared before summary generation, skipping")
			return nil
		}
		logger.Error("summary generation failed", err)
		return err
	}

	return nil
}
