package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
)

// CampaignGetter is the campaign lookup the worker prompt needs.
type CampaignGetter interface {
	Get(ctx context.Context, id uuid.UUID) (domaincampaign.Campaign, error)
}

// RegisterPrompts registers the sender_worker prompt, which tells a connected
// worker how to drive one campaign.
func RegisterPrompts(s *mcpserver.MCPServer, campaigns CampaignGetter) {
	s.AddPrompt(
		mcpmcp.NewPrompt("sender_worker",
			mcpmcp.WithPromptDescription("Operating instructions for a sending worker. Fetched once at session startup."),
			mcpmcp.WithArgument("campaign_id",
				mcpmcp.ArgumentDescription("Campaign UUID the worker sends for."),
				mcpmcp.RequiredArgument(),
			),
		),
		workerPromptHandler(campaigns),
	)
}

func workerPromptHandler(campaigns CampaignGetter) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		campaignID, err := uuid.Parse(req.Params.Arguments["campaign_id"])
		if err != nil {
			return nil, fmt.Errorf("invalid campaign_id: %w", err)
		}

		c, err := campaigns.Get(ctx, campaignID)
		if err != nil {
			return nil, fmt.Errorf("get campaign %s: %w", campaignID, err)
		}

		return mcpmcp.NewGetPromptResult(
			"Sender worker instructions",
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: workerInstructions(c),
					},
				),
			},
		), nil
	}
}

func workerInstructions(c domaincampaign.Campaign) string {
	start, end := c.Window()
	var b strings.Builder
	fmt.Fprintf(&b, "You send outreach for campaign %q (%s).\n", c.Name, c.ID)
	fmt.Fprintf(&b, "Sending window: %s to %s UTC.\n", clock(start), clock(end))
	b.WriteString("1. Call register_sender with this campaign_id and your mailbox address. Keep the returned sender_id.\n")
	b.WriteString("2. Call list_assigned_leads to pick up leads already assigned to you.\n")
	b.WriteString("3. Work each lead, then call complete_lead with its outcome. Continue with next_lead when one is returned.\n")
	b.WriteString("4. When complete_lead reports quota_reached, stop until a lead_assigned notification arrives.\n")
	return b.String()
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
