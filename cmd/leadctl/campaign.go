package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/scheduler"
	"github.com/alanyang/leadflow/internal/wire"
)

var campaignFlag = &cli.StringFlag{
	Name:     "campaign",
	Usage:    "Campaign ID",
	Required: true,
}

func campaignID(cmd *cli.Command) (uuid.UUID, error) {
	id, err := uuid.Parse(cmd.String("campaign"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --campaign: %w", err)
	}
	return id, nil
}

func campaignCmd() *cli.Command {
	return &cli.Command{
		Name:  "campaign",
		Usage: "Manage campaigns and distribute their leads",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a DRAFT campaign",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "leads-per-day", Usage: "Leads pulled per processing run"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.Args().First()
					if name == "" {
						return fmt.Errorf("campaign name is required")
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						c := domaincampaign.New(name)
						if n := int(cmd.Int("leads-per-day")); n > 0 {
							c.LeadsPerDay = &n
						}
						created, err := core.CampaignSvc.Create(ctx, c)
						if err != nil {
							return err
						}
						return printJSON(created)
					})
				},
			},
			{
				Name:      "set-status",
				Usage:     "Change a campaign's status",
				ArgsUsage: "<DRAFT|ACTIVE|PAUSED|COMPLETED>",
				Flags:     []cli.Flag{campaignFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := campaignID(cmd)
					if err != nil {
						return err
					}
					status := domaincampaign.Status(cmd.Args().First())
					switch status {
					case domaincampaign.StatusDraft, domaincampaign.StatusActive, domaincampaign.StatusPaused, domaincampaign.StatusCompleted:
					default:
						return fmt.Errorf("invalid status %q", status)
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						return core.CampaignSvc.SetStatus(ctx, id, status)
					})
				},
			},
			{
				Name:  "add-sender",
				Usage: "Link a sender to a campaign",
				Flags: []cli.Flag{
					campaignFlag,
					&cli.StringFlag{Name: "sender", Usage: "Sender ID", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := campaignID(cmd)
					if err != nil {
						return err
					}
					senderID, err := uuid.Parse(cmd.String("sender"))
					if err != nil {
						return fmt.Errorf("invalid --sender: %w", err)
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						return core.CampaignSvc.AddSender(ctx, id, senderID)
					})
				},
			},
			{
				Name:      "enrol",
				Usage:     "Queue leads on a campaign as UNASSIGNED",
				ArgsUsage: "<lead-id>...",
				Flags:     []cli.Flag{campaignFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := campaignID(cmd)
					if err != nil {
						return err
					}
					leadIDs, err := parseIDs(cmd.Args().Slice())
					if err != nil {
						return err
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						n, err := core.CampaignSvc.EnrolLeads(ctx, id, leadIDs)
						if err != nil {
							return err
						}
						return printJSON(map[string]int64{"added": n})
					})
				},
			},
			{
				Name:  "assign",
				Usage: "Deal leads across the campaign's senders",
				Flags: []cli.Flag{
					campaignFlag,
					&cli.StringSliceFlag{Name: "lead", Usage: "Lead ID, repeatable", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := campaignID(cmd)
					if err != nil {
						return err
					}
					leadIDs, err := parseIDs(cmd.StringSlice("lead"))
					if err != nil {
						return err
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						res := core.DistSvc.AssignLeadsToCampaignSenders(ctx, id, leadIDs)
						if err := printJSON(res); err != nil {
							return err
						}
						return res.Err()
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show per-sender capacity and workload",
				Flags: []cli.Flag{campaignFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := campaignID(cmd)
					if err != nil {
						return err
					}
					return withCore(ctx, cmd, func(core *wire.Core) error {
						rows, err := core.DistSvc.GetCampaignSenderWorkStatus(ctx, id)
						if err != nil {
							return err
						}
						return printJSON(rows)
					})
				},
			},
			{
				Name:  "process",
				Usage: "Run one processing pass over one or every active campaign",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "campaign", Usage: "Campaign ID; all active campaigns when omitted"},
					&cli.BoolFlag{Name: "async", Usage: "Enqueue the run on the job queue instead of running it here"},
				},
				Action: processAction,
			},
		},
	}
}

func processAction(ctx context.Context, cmd *cli.Command) error {
	var id uuid.UUID
	if cmd.String("campaign") != "" {
		var err error
		if id, err = campaignID(cmd); err != nil {
			return err
		}
	}

	if cmd.Bool("async") {
		if id == uuid.Nil {
			return fmt.Errorf("--async requires --campaign")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client, err := scheduler.NewClient(cfg.RedisURL, cfg.AsynqQueue)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.EnqueueProcessCampaign(ctx, id); err != nil {
			return err
		}
		return printJSON(map[string]string{"enqueued": id.String()})
	}

	return withCore(ctx, cmd, func(core *wire.Core) error {
		now := time.Now().UTC()
		if id == uuid.Nil {
			summary, err := core.CampaignSvc.ProcessActiveCampaigns(ctx, now)
			if err != nil {
				return err
			}
			return printJSON(summary)
		}
		run, err := core.CampaignSvc.ProcessCampaign(ctx, id, now)
		if err != nil {
			return err
		}
		return printJSON(run)
	})
}
