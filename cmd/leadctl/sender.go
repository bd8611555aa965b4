package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/alanyang/leadflow/internal/wire"
)

func senderCmd() *cli.Command {
	return &cli.Command{
		Name:  "sender",
		Usage: "Manage senders",
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "Register a sender, or return the existing one for the email",
				ArgsUsage: "<email>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Display name"},
					&cli.IntFlag{Name: "quota", Usage: "Daily quota; the default applies when omitted"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					email := cmd.Args().First()
					if email == "" {
						return fmt.Errorf("sender email is required")
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						s, err := core.SenderSvc.Register(ctx, email, cmd.String("name"), int(cmd.Int("quota")))
						if err != nil {
							return err
						}
						return printJSON(s)
					})
				},
			},
		},
	}
}

func resetQuotasCmd() *cli.Command {
	return &cli.Command{
		Name:  "reset-quotas",
		Usage: "Zero every sender's sent-today counter",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withCore(ctx, cmd, func(core *wire.Core) error {
				n, err := core.SenderSvc.ResetDailyQuotas(ctx)
				if err != nil {
					return err
				}
				return printJSON(map[string]int64{"reset": n})
			})
		},
	}
}
