package sender

import (
	"context"

	"github.com/google/uuid"

	"github.com/alanyang/leadflow/internal/domain/lead"
	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
)

// Repository manages senders and their campaign membership.
type Repository interface {
	Create(ctx context.Context, s domainsender.Sender) (domainsender.Sender, error)
	GetByID(ctx context.Context, id uuid.UUID) (domainsender.Sender, error)
	GetByEmail(ctx context.Context, email string) (domainsender.Sender, error)

	// AddToCampaign links a sender to a campaign. Re-adding reactivates the link.
	AddToCampaign(ctx context.Context, campaignID, senderID uuid.UUID) error

	// ListByCampaign returns the senders actively linked to a campaign, in
	// the order they joined it.
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domainsender.Sender, error)

	// GetForCampaign returns a sender only if it is actively linked to the campaign.
	GetForCampaign(ctx context.Context, campaignID, senderID uuid.UUID) (domainsender.Sender, error)

	// IncrementStats adds deltas to the lifetime counters and bumps
	// emails_sent_today by the same EmailsSent delta.
	IncrementStats(ctx context.Context, senderID uuid.UUID, d lead.Deltas) error

	// ResetDailyCounts zeroes emails_sent_today for every sender and returns
	// how many rows changed.
	ResetDailyCounts(ctx context.Context) (int64, error)
}
