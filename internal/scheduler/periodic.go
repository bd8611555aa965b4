package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Periodic enqueues the recurring tasks on their cron schedules. Cron specs
// are evaluated in UTC, the same clock campaign windows use.
type Periodic struct {
	scheduler *asynq.Scheduler
}

func NewPeriodic(redisURL, queue, processCron, resetCron string) (*Periodic, error) {
	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}
	if queue == "" {
		queue = "default"
	}

	s := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				slog.Error("failed to enqueue periodic task", "error", err)
				return
			}
			slog.Debug("periodic task enqueued", "type", info.Type, "id", info.ID)
		},
	})

	entries := []struct {
		spec string
		task *asynq.Task
	}{
		{processCron, NewProcessActiveCampaignsTask()},
		{resetCron, NewResetQuotasTask()},
	}
	for _, e := range entries {
		if e.spec == "" {
			continue
		}
		if _, err := s.Register(e.spec, e.task, asynq.Queue(queue)); err != nil {
			return nil, fmt.Errorf("register %s (%q): %w", e.task.Type(), e.spec, err)
		}
	}

	return &Periodic{scheduler: s}, nil
}

// Run enqueues periodic tasks until ctx is cancelled.
func (p *Periodic) Run(ctx context.Context) error {
	if err := p.scheduler.Start(); err != nil {
		return fmt.Errorf("start periodic scheduler: %w", err)
	}
	<-ctx.Done()
	p.scheduler.Shutdown()
	return nil
}
