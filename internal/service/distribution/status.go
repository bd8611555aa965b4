package distribution

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alanyang/leadflow/internal/domain/allocation"
	"github.com/alanyang/leadflow/internal/domain/lead"
	"github.com/alanyang/leadflow/internal/domain/sender"
	portcache "github.com/alanyang/leadflow/internal/port/cache"
)

// SenderWorkStatus is one row of the campaign dashboard.
type SenderWorkStatus struct {
	SenderID          uuid.UUID `json:"sender_id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	DailyQuota        int       `json:"daily_quota"`
	EmailsSentToday   int       `json:"emails_sent_today"`
	AvailableCapacity int       `json:"available_capacity"`
	ActiveLeads       int       `json:"active_leads"`
	CompletedLeads    int       `json:"completed_leads"`
	UtilizationPct    float64   `json:"utilization_pct"`
	Exhausted         bool      `json:"exhausted"`
}

// GetCampaignSenderWorkStatus returns capacity and lead counts for every
// active sender of the campaign, including exhausted ones.
func (s *Service) GetCampaignSenderWorkStatus(ctx context.Context, campaignID uuid.UUID) ([]SenderWorkStatus, error) {
	if cached, ok := s.cachedStatus(ctx, campaignID); ok {
		return cached, nil
	}

	var (
		senders []sender.Sender
		counts  map[uuid.UUID]lead.Counts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		senders, err = s.senders.ListByCampaign(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("list campaign senders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = s.leads.CountsBySender(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("count leads by sender: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SenderWorkStatus, 0, len(senders))
	for _, snd := range senders {
		c := counts[snd.ID]
		capacity := allocation.CapacityOf(snd)
		out = append(out, SenderWorkStatus{
			SenderID:          snd.ID,
			Email:             snd.Email,
			Name:              snd.Name,
			DailyQuota:        snd.Quota(),
			EmailsSentToday:   snd.SentToday(),
			AvailableCapacity: capacity.Available,
			ActiveLeads:       c.Assigned,
			CompletedLeads:    c.Worked,
			UtilizationPct:    utilization(snd.SentToday(), snd.Quota()),
			Exhausted:         capacity.Available == 0,
		})
	}

	s.storeStatus(ctx, campaignID, out)
	return out, nil
}

func utilization(sent, quota int) float64 {
	if quota <= 0 {
		return 100
	}
	return float64(sent) * 100 / float64(quota)
}

func statusKey(campaignID uuid.UUID) string {
	return "status:" + campaignID.String()
}

func (s *Service) cachedStatus(ctx context.Context, campaignID uuid.UUID) ([]SenderWorkStatus, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, statusKey(campaignID))
	if err != nil {
		if !errors.Is(err, portcache.ErrMiss) {
			slog.WarnContext(ctx, "status cache read failed", "campaign_id", campaignID, "error", err)
		}
		return nil, false
	}
	var out []SenderWorkStatus
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.WarnContext(ctx, "discarding corrupt status cache entry", "campaign_id", campaignID, "error", err)
		return nil, false
	}
	return out, true
}

func (s *Service) storeStatus(ctx context.Context, campaignID uuid.UUID, rows []SenderWorkStatus) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statusKey(campaignID), raw, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "status cache write failed", "campaign_id", campaignID, "error", err)
	}
}

// invalidateStatus drops the campaign's cached dashboard after a write.
func (s *Service) invalidateStatus(ctx context.Context, campaignID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statusKey(campaignID)); err != nil {
		slog.WarnContext(ctx, "status cache invalidation failed", "campaign_id", campaignID, "error", err)
	}
}
