package distribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/leadflow/internal/domain/allocation"
	"github.com/alanyang/leadflow/internal/domain/event"
	"github.com/alanyang/leadflow/internal/domain/lead"
)

var errClaimContended = errors.New("next lead was claimed concurrently")

// MarkLeadWorkedAndGetNext records the outcome of one lead and, if the sender
// still has quota, assigns it the oldest unassigned lead of the campaign.
//
// Recording the outcome and updating counters must succeed for Success to be
// true. Once they have, failures while pulling the next lead are reported
// with CodeNextLeadFailed but still Success true, so the work event is never
// reported as lost.
func (s *Service) MarkLeadWorkedAndGetNext(ctx context.Context, campaignID, leadID, senderID uuid.UUID, outcome lead.Outcome) WorkResult {
	if !outcome.Status.IsWorkOutcome() {
		return WorkResult{
			Code:    CodeInvalidOutcome,
			Message: fmt.Sprintf("invalid outcome status %q", outcome.Status),
		}
	}

	if err := s.leads.MarkWorked(ctx, campaignID, leadID, senderID, outcome); err != nil {
		return WorkResult{Code: CodePersistenceFailure, Message: fmt.Sprintf("mark lead worked: %v", err)}
	}

	deltas := outcome.Deltas()
	if err := s.senders.IncrementStats(ctx, senderID, deltas); err != nil {
		return WorkResult{Code: CodePersistenceFailure, Message: fmt.Sprintf("update sender stats: %v", err)}
	}
	if err := s.campaigns.IncrementStats(ctx, campaignID, deltas); err != nil {
		return WorkResult{Code: CodePersistenceFailure, Message: fmt.Sprintf("update campaign stats: %v", err)}
	}

	s.publish(ctx, event.TypeLeadWorked, leadID, campaignID)
	defer s.invalidateStatus(ctx, campaignID)

	res, err := s.advance(ctx, campaignID, senderID)
	if err != nil {
		slog.WarnContext(ctx, "next-lead lookup failed",
			"campaign_id", campaignID, "sender_id", senderID, "error", err)
		return WorkResult{Success: true, Code: CodeNextLeadFailed, Message: msgNextLeadFailure + err.Error()}
	}

	switch {
	case res.Code == CodeQuotaReached:
		s.publish(ctx, event.TypeSenderQuotaReached, senderID, campaignID)
	case res.NextLead != nil:
		s.publish(ctx, event.TypeLeadAssigned, res.NextLead.LeadID, campaignID)
		s.notifyAssigned(ctx, campaignID, senderID, res.NextLead.LeadID)
	}
	return res
}

// advance re-checks the sender's capacity and claims one lead for it. The
// check and the claim run under a per-sender advisory lock so two completions
// for the same sender cannot both pass the check on the last unit of quota.
func (s *Service) advance(ctx context.Context, campaignID, senderID uuid.UUID) (WorkResult, error) {
	var res WorkResult
	err := s.locker.WithLock(ctx, lockKey(campaignID, senderID), func(ctx context.Context) error {
		snd, err := s.senders.GetForCampaign(ctx, campaignID, senderID)
		if err != nil {
			return fmt.Errorf("get sender: %w", err)
		}
		if allocation.CapacityOf(snd).Available <= 0 {
			res = WorkResult{Success: true, Code: CodeQuotaReached, Message: MsgQuotaReached}
			return nil
		}

		for range maxClaimAttempts {
			next, err := s.leads.ListUnassigned(ctx, campaignID, 1)
			if err != nil {
				return fmt.Errorf("list unassigned leads: %w", err)
			}
			if len(next) == 0 {
				res = WorkResult{Success: true, Code: CodeOK, Message: MsgNoLeadsRemain}
				return nil
			}

			l := next[0]
			err = s.leads.Assign(ctx, campaignID, l.LeadID, senderID)
			if errors.Is(err, lead.ErrNotAssignable) {
				continue
			}
			if err != nil {
				return fmt.Errorf("assign next lead: %w", err)
			}

			now := time.Now().UTC()
			l.Status = lead.StatusAssigned
			l.SenderID = &senderID
			l.AssignedAt = &now
			l.UpdatedAt = now
			res = WorkResult{Success: true, Code: CodeOK, Message: MsgNextLeadAssigned, NextLead: &l}
			return nil
		}
		return errClaimContended
	})
	return res, err
}
