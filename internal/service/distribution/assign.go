package distribution

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alanyang/leadflow/internal/domain/allocation"
	"github.com/alanyang/leadflow/internal/domain/event"
)

// AssignLeadsToCampaignSenders deals leadIDs across the campaign's active
// senders and persists each placement in input order.
//
// Running out of capacity part way through is still a success: the leads
// that did not fit stay UNASSIGNED and Assigned < len(leadIDs).
func (s *Service) AssignLeadsToCampaignSenders(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) AssignResult {
	senders, err := s.senders.ListByCampaign(ctx, campaignID)
	if err != nil {
		return AssignResult{Code: CodePersistenceFailure, Message: fmt.Sprintf("list campaign senders: %v", err)}
	}
	if len(senders) == 0 {
		return AssignResult{Code: CodeNoSenders, Message: MsgNoSenders}
	}

	capacities := allocation.ResolveCapacity(senders)
	if len(capacities) == 0 {
		return AssignResult{Code: CodeNoSenders, Message: MsgAllExhausted}
	}

	placements := allocation.Deal(leadIDs, capacities)
	for i, p := range placements {
		if err := s.leads.Assign(ctx, campaignID, p.LeadID, p.SenderID); err != nil {
			slog.ErrorContext(ctx, "assignment pass interrupted",
				"campaign_id", campaignID, "lead_id", p.LeadID, "watermark", i, "error", err)
			if i > 0 {
				s.invalidateStatus(ctx, campaignID)
			}
			return AssignResult{
				Code:        CodePersistenceFailure,
				Message:     fmt.Sprintf("assign lead %s: %v", p.LeadID, err),
				Assignments: allocation.Group(placements[:i], capacities),
				Assigned:    i,
				Watermark:   i,
			}
		}
	}

	for _, p := range placements {
		s.publish(ctx, event.TypeLeadAssigned, p.LeadID, campaignID)
		s.notifyAssigned(ctx, campaignID, p.SenderID, p.LeadID)
	}
	if len(placements) > 0 {
		s.invalidateStatus(ctx, campaignID)
	}

	assignments := allocation.Group(placements, capacities)
	slog.InfoContext(ctx, "leads assigned",
		"campaign_id", campaignID, "requested", len(leadIDs), "assigned", len(placements), "senders", len(assignments))

	return AssignResult{
		Success:     true,
		Code:        CodeOK,
		Message:     fmt.Sprintf("Successfully assigned %d leads to %d senders", len(placements), len(assignments)),
		Assignments: assignments,
		Assigned:    len(placements),
		Watermark:   len(placements),
	}
}
