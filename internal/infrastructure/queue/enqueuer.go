package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"page-insights-backend/internal/shared"
)

// Enqueuer wraps the asynq client behind the domain's TaskEnqueuer port.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisAddr, password string, db int) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

func (e *Enqueuer) EnqueueSummary(ctx context.Context, pageID string) error {
	payload, err := json.Marshal(shared.SummaryPayload{PageID: pageID})
	if err != nil {
		return fmt.Errorf("failed to marshal summary payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeGenerateSummary, payload)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue summary task: %w", err)
	}
	return nil
}

func (e *Enqueuer) EnqueueRefresh(ctx context.Context, pageID string, depth int) error {
	payload, err := json.Marshal(shared.RefreshPayload{PageID: pageID, Depth: depth})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeRefreshPage, payload)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
		// Duplicate refreshes for the same page within a scan window are
		// wasted work.
		asynq.TaskID(fmt.Sprintf("refresh:%s", pageID)),
	)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("failed to enqueue refresh task: %w", err)
	}
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
