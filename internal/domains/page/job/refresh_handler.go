package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/internal/shared"
	"page-insights-backend/pkg/logger"
)

// RefreshPageHandler re-acquires one page in the background.
type RefreshPageHandler struct {
	acquisition page.AcquisitionService
}

func NewRefreshPageHandler(acquisition page.AcquisitionService) *RefreshPageHandler {
	return &RefreshPageHandler{acquisition: acquisition}
}

func (h *RefreshPageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("refresh payload unmarshal failed", err)
		return err
	}

	depth := payload.Depth
	if depth == 0 {
		depth = int(page.DepthPeople)
	}

	resp, err := h.acquisition.Acquire(ctx, page.AcquireRequest{
		Identifier: payload.PageID,
		Depth:      depth,
	})
	if err != nil {
		logger.Error("background refresh failed", err)
		return err
	}

	log.Info().
		Str("page_id", resp.PageID).
		Str("source", string(resp.Source)).
		Msg("Page refreshed")
	return nil
}

// RefreshScanHandler finds stale pages and fans out refresh tasks. It is
// triggered on a schedule rather than per page.
type RefreshScanHandler struct {
	repo     page.Repository
	enqueuer page.TaskEnqueuer
	maxAge   time.Duration
	batch    int
}

func NewRefreshScanHandler(repo page.Repository, enqueuer page.TaskEnqueuer, maxAge time.Duration, batch int) *RefreshScanHandler {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	if batch <= 0 {
		batch = 20
	}
	return &RefreshScanHandler{repo: repo, enqueuer: enqueuer, maxAge: maxAge, batch: batch}
}

func (h *RefreshScanHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	ids, err := h.repo.ListStalePages(ctx, h.maxAge, h.batch)
	if err != nil {
		logger.Error("stale page scan failed", err)
		return err
	}
	if len(ids) == 0 {
		log.Debug().Msg("No stale pages to refresh")
		return nil
	}

	enqueued := 0
	for _, id := range ids {
		if err := h.enqueuer.EnqueueRefresh(ctx, id, int(page.DepthPeople)); err != nil {
			logger.Error("refresh enqueue failed", err)
			continue
		}
		enqueued++
	}

	log.Info().
		Int("stale", len(ids)).
		Int("enqueued", enqueued).
		Msg("Refresh scan completed")
	return nil
}
