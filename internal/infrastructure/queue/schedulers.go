package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"page-insights-backend/internal/shared"
	"page-insights-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	scanCron  string
}

func NewScheduler(redisAddr, password string, db int, scanCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		scanCron:  scanCron,
	}
}

// RegisterJobs wires the recurring refresh scan. The scan task itself is
// cheap; the fan-out happens in the worker handler.
func (s *Scheduler) RegisterJobs() error {
	task := asynq.NewTask(shared.TypeRefreshScan, nil)

	_, err := s.scheduler.Register(
		s.scanCron,
		task,
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register refresh scan job", err)
		return err
	}

	logger.Info("Registered refresh scan job", map[string]interface{}{
		"cron": s.scanCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
