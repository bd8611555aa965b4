package campaign

import (
	"context"

	"github.com/google/uuid"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/domain/lead"
)

type Repository interface {
	Create(ctx context.Context, c domaincampaign.Campaign) (domaincampaign.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (domaincampaign.Campaign, error)
	List(ctx context.Context, filters domaincampaign.ListFilters) ([]domaincampaign.Campaign, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domaincampaign.Status) error
	IncrementStats(ctx context.Context, campaignID uuid.UUID, d lead.Deltas) error
}
