package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainlead "github.com/alanyang/leadflow/internal/domain/lead"
)

type Repository interface {
	// Add enrols leads into a campaign as UNASSIGNED. Existing rows are left alone.
	Add(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) (int64, error)
	Get(ctx context.Context, campaignID, leadID uuid.UUID) (domainlead.CampaignLead, error)
	List(ctx context.Context, filters domainlead.ListFilters) ([]domainlead.CampaignLead, error)

	// ListUnassigned returns up to limit UNASSIGNED leads, oldest first with
	// lead_id as tie-breaker.
	ListUnassigned(ctx context.Context, campaignID uuid.UUID, limit int) ([]domainlead.CampaignLead, error)

	// Assign moves a lead to ASSIGNED for senderID. It succeeds when the lead
	// is UNASSIGNED or already ASSIGNED to the same sender, and returns
	// domainlead.ErrNotAssignable otherwise.
	Assign(ctx context.Context, campaignID, leadID, senderID uuid.UUID) error

	// MarkWorked records a work outcome on a lead ASSIGNED to senderID.
	MarkWorked(ctx context.Context, campaignID, leadID, senderID uuid.UUID, outcome domainlead.Outcome) error

	// CountAssignedSince counts the campaign's leads first assigned at or
	// after since, whatever their current status.
	CountAssignedSince(ctx context.Context, campaignID uuid.UUID, since time.Time) (int, error)

	// CountsBySender aggregates assigned and worked counts per sender.
	CountsBySender(ctx context.Context, campaignID uuid.UUID) (map[uuid.UUID]domainlead.Counts, error)
}
