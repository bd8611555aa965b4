package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/alanyang/leadflow/internal/config"
	"github.com/alanyang/leadflow/internal/wire"
)

// loadConfig applies the global flags over the environment before loading.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	for flag, env := range map[string]string{"database-url": "DATABASE_URL", "redis-url": "REDIS_URL"} {
		if v := cmd.String(flag); v != "" {
			if err := os.Setenv(env, v); err != nil {
				return nil, fmt.Errorf("set %s: %w", env, err)
			}
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(cfg.Logger())
	return cfg, nil
}

func withCore(ctx context.Context, cmd *cli.Command, fn func(core *wire.Core) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	core, err := wire.BuildCore(ctx, cfg, "leadctl")
	if err != nil {
		return err
	}
	defer core.Close()
	return fn(core)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", r, err)
		}
		out = append(out, id)
	}
	return out, nil
}
