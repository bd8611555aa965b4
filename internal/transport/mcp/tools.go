package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/leadflow/internal/domain/lead"
	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
	"github.com/alanyang/leadflow/internal/service/distribution"
	sendersvc "github.com/alanyang/leadflow/internal/service/sender"
)

// RegisterTools registers all MCP tools on the server.
func RegisterTools(
	s *mcpserver.MCPServer,
	reg *SessionRegistry,
	distSvc *distribution.Service,
	senderSvc *sendersvc.Service,
	campaignSvc *campaignsvc.Service,
) {
	s.AddTool(mcpmcp.NewTool("register_sender",
		mcpmcp.WithDescription("Register this worker as the sending identity for a campaign. Returns the sender_id. Registering an email that already exists reuses that sender. lead_assigned notifications for the sender are pushed to this session."),
		mcpmcp.WithString("campaign_id", mcpmcp.Required(), mcpmcp.Description("Campaign UUID")),
		mcpmcp.WithString("email", mcpmcp.Required(), mcpmcp.Description("Sending mailbox address")),
		mcpmcp.WithString("name", mcpmcp.Description("Display name of the sender")),
		mcpmcp.WithNumber("daily_quota", mcpmcp.Description("Emails this sender may send per day. Omit for the default of 20.")),
	), registerSenderHandler(reg, senderSvc, campaignSvc))

	s.AddTool(mcpmcp.NewTool("list_assigned_leads",
		mcpmcp.WithDescription("Returns the leads currently ASSIGNED to the sender in a campaign, oldest first. Call after register_sender to resume work from a previous session."),
		mcpmcp.WithString("campaign_id", mcpmcp.Required(), mcpmcp.Description("Campaign UUID")),
		mcpmcp.WithString("sender_id", mcpmcp.Required(), mcpmcp.Description("Sender UUID returned by register_sender")),
	), listAssignedLeadsHandler(campaignSvc))

	s.AddTool(mcpmcp.NewTool("complete_lead",
		mcpmcp.WithDescription("Report the outcome of one assigned lead. If the sender has quota left, the next unassigned lead is assigned and returned as next_lead."),
		mcpmcp.WithString("campaign_id", mcpmcp.Required(), mcpmcp.Description("Campaign UUID")),
		mcpmcp.WithString("lead_id", mcpmcp.Required(), mcpmcp.Description("Lead UUID")),
		mcpmcp.WithString("sender_id", mcpmcp.Required(), mcpmcp.Description("Sender UUID")),
		mcpmcp.WithString("status", mcpmcp.Required(), mcpmcp.Description("One of: CONTACTED, BOUNCED, FAILED, SKIPPED")),
		mcpmcp.WithBoolean("email_sent", mcpmcp.Description("An email went out for this lead")),
		mcpmcp.WithBoolean("email_opened", mcpmcp.Description("The email was opened")),
		mcpmcp.WithBoolean("email_clicked", mcpmcp.Description("A link in the email was clicked")),
		mcpmcp.WithBoolean("email_replied", mcpmcp.Description("The lead replied")),
		mcpmcp.WithString("notes", mcpmcp.Description("Free-form notes stored on the lead")),
	), completeLeadHandler(distSvc))

	s.AddTool(mcpmcp.NewTool("assign_leads",
		mcpmcp.WithDescription("Deal a batch of the campaign's leads across its senders round-robin, within each sender's remaining daily quota."),
		mcpmcp.WithString("campaign_id", mcpmcp.Required(), mcpmcp.Description("Campaign UUID")),
		mcpmcp.WithArray("lead_ids", mcpmcp.Required(), mcpmcp.WithStringItems(), mcpmcp.Description("Lead UUIDs in the order they should be dealt")),
	), assignLeadsHandler(distSvc))

	s.AddTool(mcpmcp.NewTool("sender_work_status",
		mcpmcp.WithDescription("Per-sender quota, capacity and lead counts for a campaign."),
		mcpmcp.WithString("campaign_id", mcpmcp.Required(), mcpmcp.Description("Campaign UUID")),
	), senderWorkStatusHandler(distSvc))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func registerSenderHandler(
	reg *SessionRegistry,
	senderSvc *sendersvc.Service,
	campaignSvc *campaignsvc.Service,
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		campaignID, err := uuid.Parse(mcpmcp.ParseString(req, "campaign_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid campaign_id"), nil
		}
		email := mcpmcp.ParseString(req, "email", "")
		name := mcpmcp.ParseString(req, "name", "")
		quota := mcpmcp.ParseInt(req, "daily_quota", 0)

		snd, err := senderSvc.Register(ctx, email, name, quota)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		if err := campaignSvc.AddSender(ctx, campaignID, snd.ID); err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
			reg.Register(session.SessionID(), snd.ID, campaignID)
		}

		result, _ := json.Marshal(map[string]any{
			"sender_id":   snd.ID.String(),
			"daily_quota": snd.Quota(),
			"capacity":    snd.Capacity(),
		})
		return mcpmcp.NewToolResultText(string(result)), nil
	}
}

func listAssignedLeadsHandler(campaignSvc *campaignsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		campaignID, err := uuid.Parse(mcpmcp.ParseString(req, "campaign_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid campaign_id"), nil
		}
		senderID, err := uuid.Parse(mcpmcp.ParseString(req, "sender_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid sender_id"), nil
		}

		assigned := lead.StatusAssigned
		leads, err := campaignSvc.ListLeads(ctx, lead.ListFilters{
			CampaignID:  campaignID,
			Status:      &assigned,
			SenderID:    &senderID,
			OldestFirst: true,
		})
		if err != nil {
			return mcpmcp.NewToolResultText("[]"), nil
		}
		if leads == nil {
			leads = []lead.CampaignLead{}
		}

		data, _ := json.Marshal(leads)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func completeLeadHandler(distSvc *distribution.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		ids := make(map[string]uuid.UUID, 3)
		for _, key := range []string{"campaign_id", "lead_id", "sender_id"} {
			id, err := uuid.Parse(mcpmcp.ParseString(req, key, ""))
			if err != nil {
				return mcpmcp.NewToolResultText("error: invalid " + key), nil
			}
			ids[key] = id
		}

		outcome := lead.Outcome{
			Status:       lead.Status(mcpmcp.ParseString(req, "status", "")),
			EmailSent:    mcpmcp.ParseBoolean(req, "email_sent", false),
			EmailOpened:  mcpmcp.ParseBoolean(req, "email_opened", false),
			EmailClicked: mcpmcp.ParseBoolean(req, "email_clicked", false),
			EmailReplied: mcpmcp.ParseBoolean(req, "email_replied", false),
			Notes:        mcpmcp.ParseString(req, "notes", ""),
		}

		res := distSvc.MarkLeadWorkedAndGetNext(ctx, ids["campaign_id"], ids["lead_id"], ids["sender_id"], outcome)
		if !res.Success {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", res.Message)), nil
		}

		data, _ := json.Marshal(res)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func assignLeadsHandler(distSvc *distribution.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		campaignID, err := uuid.Parse(mcpmcp.ParseString(req, "campaign_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid campaign_id"), nil
		}

		raw := req.GetStringSlice("lead_ids", nil)
		leadIDs := make([]uuid.UUID, 0, len(raw))
		for _, v := range raw {
			id, err := uuid.Parse(v)
			if err != nil {
				return mcpmcp.NewToolResultText(fmt.Sprintf("error: invalid lead id %q", v)), nil
			}
			leadIDs = append(leadIDs, id)
		}

		res := distSvc.AssignLeadsToCampaignSenders(ctx, campaignID, leadIDs)
		data, _ := json.Marshal(res)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func senderWorkStatusHandler(distSvc *distribution.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		campaignID, err := uuid.Parse(mcpmcp.ParseString(req, "campaign_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid campaign_id"), nil
		}

		rows, err := distSvc.GetCampaignSenderWorkStatus(ctx, campaignID)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		if rows == nil {
			rows = []distribution.SenderWorkStatus{}
		}

		data, _ := json.Marshal(rows)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}
