package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
)

type CampaignProcessor interface {
	ProcessActiveCampaigns(ctx context.Context, now time.Time) (campaignsvc.ProcessSummary, error)
	ProcessCampaign(ctx context.Context, campaignID uuid.UUID, now time.Time) (campaignsvc.Run, error)
}

type QuotaResetter interface {
	ResetDailyQuotas(ctx context.Context) (int64, error)
}

// OperationPurger drops stored idempotent responses past their retention.
type OperationPurger interface {
	Purge(ctx context.Context, olderThanDays int) (int64, error)
}

// Handlers serves the scheduler's task types.
type Handlers struct {
	Campaigns     CampaignProcessor
	Senders       QuotaResetter
	Operations    OperationPurger
	RetentionDays int
	Now           func() time.Time
}

func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskProcessActiveCampaigns, h.handleProcessActiveCampaigns)
	mux.HandleFunc(TaskProcessCampaign, h.handleProcessCampaign)
	mux.HandleFunc(TaskResetQuotas, h.handleResetQuotas)
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

func (h *Handlers) handleProcessActiveCampaigns(ctx context.Context, _ *asynq.Task) error {
	if _, err := h.Campaigns.ProcessActiveCampaigns(ctx, h.now()); err != nil {
		return fmt.Errorf("process active campaigns: %w", err)
	}
	return nil
}

func (h *Handlers) handleProcessCampaign(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProcessCampaignPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	campaignID, err := uuid.Parse(payload.CampaignID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	run, err := h.Campaigns.ProcessCampaign(ctx, campaignID, h.now())
	if err != nil {
		return fmt.Errorf("process campaign: %w", err)
	}
	if run.Skipped {
		slog.InfoContext(ctx, "campaign run skipped", "campaign_id", campaignID, "reason", run.Reason)
	}
	return nil
}

func (h *Handlers) handleResetQuotas(ctx context.Context, _ *asynq.Task) error {
	if _, err := h.Senders.ResetDailyQuotas(ctx); err != nil {
		return fmt.Errorf("reset daily quotas: %w", err)
	}

	if h.Operations == nil || h.RetentionDays <= 0 {
		return nil
	}
	n, err := h.Operations.Purge(ctx, h.RetentionDays)
	if err != nil {
		slog.ErrorContext(ctx, "failed to purge processed operations", "error", err)
		return nil
	}
	slog.InfoContext(ctx, "purged processed operations", "count", n)
	return nil
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisURL, queue string, concurrency int, h *Handlers) (*Worker, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	if queue == "" {
		queue = "default"
	}
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			slog.ErrorContext(ctx, "scheduler task failed", "type", task.Type(), "error", err)
		}),
	})

	mux := asynq.NewServeMux()
	h.Register(mux)

	return &Worker{server: server, mux: mux}, nil
}

// Run serves tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		slog.Error("scheduler worker stopped", "error", err)
	}
}
