package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/alanyang/leadflow/internal/config"
	"github.com/alanyang/leadflow/internal/scheduler"
	"github.com/alanyang/leadflow/internal/wire"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Logger())

	if cfg.RedisURL == "" {
		slog.Error("REDIS_URL is required for the scheduler")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	core, err := wire.BuildCore(ctx, cfg, "leadflow-scheduler")
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	worker, err := scheduler.NewWorker(cfg.RedisURL, cfg.AsynqQueue, cfg.AsynqConcurrency, &scheduler.Handlers{
		Campaigns:     core.CampaignSvc,
		Senders:       core.SenderSvc,
		Operations:    core.Operations,
		RetentionDays: cfg.IdempotencyRetentionDays,
	})
	if err != nil {
		slog.Error("failed to create scheduler worker", "error", err)
		os.Exit(1)
	}

	periodic, err := scheduler.NewPeriodic(cfg.RedisURL, cfg.AsynqQueue, cfg.ProcessCron, cfg.ResetQuotasCron)
	if err != nil {
		slog.Error("failed to create periodic scheduler", "error", err)
		os.Exit(1)
	}

	slog.Info("scheduler started",
		"queue", cfg.AsynqQueue,
		"process_cron", cfg.ProcessCron,
		"reset_cron", cfg.ResetQuotasCron,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.Run(gctx)
		if gctx.Err() == nil {
			return errors.New("scheduler worker exited")
		}
		return nil
	})
	g.Go(func() error {
		return periodic.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		slog.Error("scheduler stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("leadflow scheduler stopped")
}
