package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	pgdb "github.com/alanyang/leadflow/internal/adapter/postgres"
)

func migrateCmd() *cli.Command {
	run := func(down bool) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, err := pgdb.Connect(ctx, cfg.DatabaseURL, "leadctl", cfg.DBMaxConns)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			if down {
				return pgdb.MigrateDown(ctx, pool)
			}
			return pgdb.Migrate(ctx, pool)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Run database migrations",
		Commands: []*cli.Command{
			{Name: "up", Usage: "Apply all pending migrations", Action: run(false)},
			{Name: "down", Usage: "Roll back the last migration", Action: run(true)},
		},
	}
}
