package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "leadctl:", err)
		os.Exit(1)
	}
}

func app() *cli.Command {
	return &cli.Command{
		Name:    "leadctl",
		Version: version,
		Usage:   "Operate the lead distribution engine from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "PostgreSQL connection string",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for the shared status cache and the job queue",
				Sources: cli.EnvVars("REDIS_URL"),
			},
		},
		Commands: []*cli.Command{
			migrateCmd(),
			senderCmd(),
			campaignCmd(),
			resetQuotasCmd(),
		},
	}
}
