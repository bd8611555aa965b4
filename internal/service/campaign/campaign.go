// Package campaign runs the periodic campaign processor and the campaign
// management operations exposed to the transport layer.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/domain/event"
	"github.com/alanyang/leadflow/internal/domain/lead"
	portcampaign "github.com/alanyang/leadflow/internal/port/campaign"
	portbus "github.com/alanyang/leadflow/internal/port/eventbus"
	portlead "github.com/alanyang/leadflow/internal/port/lead"
	portsender "github.com/alanyang/leadflow/internal/port/sender"
	"github.com/alanyang/leadflow/internal/service/distribution"
)

var ErrNotActive = errors.New("campaign is not active")

// Assigner is the slice of the distribution engine the processor drives.
type Assigner interface {
	AssignLeadsToCampaignSenders(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) distribution.AssignResult
}

// Run describes what one processing attempt did to one campaign.
type Run struct {
	CampaignID uuid.UUID                  `json:"campaign_id"`
	Skipped    bool                       `json:"skipped"`
	Reason     string                     `json:"reason,omitempty"`
	Completed  bool                       `json:"completed,omitempty"`
	Result     *distribution.AssignResult `json:"result,omitempty"`
}

// ProcessSummary aggregates one pass over the active campaigns.
type ProcessSummary struct {
	Considered    int   `json:"considered"`
	Processed     int   `json:"processed"`
	Skipped       int   `json:"skipped"`
	Failed        int   `json:"failed"`
	LeadsAssigned int   `json:"leads_assigned"`
	Runs          []Run `json:"runs"`
}

func (p *ProcessSummary) add(r Run) {
	p.Runs = append(p.Runs, r)
	switch {
	case r.Skipped:
		p.Skipped++
	case r.Result != nil && !r.Result.Success:
		p.Failed++
		p.LeadsAssigned += r.Result.Assigned
	default:
		p.Processed++
		if r.Result != nil {
			p.LeadsAssigned += r.Result.Assigned
		}
	}
}

const (
	reasonOutsideWindow = "outside sending window"
	reasonDailyLimit    = "daily lead limit reached"
	reasonNoLeads       = "no unassigned leads"
)

type Service struct {
	repo     portcampaign.Repository
	leads    portlead.Repository
	senders  portsender.Repository
	assigner Assigner
	bus      portbus.EventBus
}

func NewService(
	repo portcampaign.Repository,
	leads portlead.Repository,
	senders portsender.Repository,
	assigner Assigner,
	bus portbus.EventBus,
) *Service {
	return &Service{
		repo:     repo,
		leads:    leads,
		senders:  senders,
		assigner: assigner,
		bus:      bus,
	}
}

func (s *Service) Create(ctx context.Context, c domaincampaign.Campaign) (domaincampaign.Campaign, error) {
	if c.ID == uuid.Nil {
		fresh := domaincampaign.New(c.Name)
		c.ID, c.CreatedAt, c.UpdatedAt = fresh.ID, fresh.CreatedAt, fresh.UpdatedAt
	}
	if c.Status == "" {
		c.Status = domaincampaign.StatusDraft
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return domaincampaign.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domaincampaign.Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domaincampaign.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filters domaincampaign.ListFilters) ([]domaincampaign.Campaign, error) {
	cs, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return cs, nil
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status domaincampaign.Status) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	return nil
}

// ListLeads returns the campaign's lead rows matching filters.
func (s *Service) ListLeads(ctx context.Context, filters lead.ListFilters) ([]lead.CampaignLead, error) {
	ls, err := s.leads.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list campaign leads: %w", err)
	}
	return ls, nil
}

// EnrolLeads adds leads to the campaign's queue as UNASSIGNED and returns how
// many were new.
func (s *Service) EnrolLeads(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) (int64, error) {
	if _, err := s.repo.GetByID(ctx, campaignID); err != nil {
		return 0, fmt.Errorf("get campaign: %w", err)
	}
	n, err := s.leads.Add(ctx, campaignID, leadIDs)
	if err != nil {
		return 0, fmt.Errorf("enrol leads: %w", err)
	}
	return n, nil
}

// AddSender links a sender to the campaign. Its capacity is considered from
// the next assignment pass on.
func (s *Service) AddSender(ctx context.Context, campaignID, senderID uuid.UUID) error {
	if err := s.senders.AddToCampaign(ctx, campaignID, senderID); err != nil {
		return fmt.Errorf("add sender to campaign: %w", err)
	}
	return nil
}

// ProcessActiveCampaigns runs one processing pass over every ACTIVE campaign.
// A failing campaign is logged and counted; it never stops the pass.
func (s *Service) ProcessActiveCampaigns(ctx context.Context, now time.Time) (ProcessSummary, error) {
	active := domaincampaign.StatusActive
	cs, err := s.repo.List(ctx, domaincampaign.ListFilters{Status: &active})
	if err != nil {
		return ProcessSummary{}, fmt.Errorf("list active campaigns: %w", err)
	}

	summary := ProcessSummary{Considered: len(cs), Runs: make([]Run, 0, len(cs))}
	for _, c := range cs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		run, err := s.process(ctx, c, now)
		if err != nil {
			slog.ErrorContext(ctx, "campaign processing failed", "campaign_id", c.ID, "error", err)
			summary.Failed++
			summary.Runs = append(summary.Runs, Run{CampaignID: c.ID, Reason: err.Error()})
			continue
		}
		summary.add(run)
	}

	slog.InfoContext(ctx, "processed active campaigns",
		"considered", summary.Considered,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"leads_assigned", summary.LeadsAssigned,
	)
	return summary, nil
}

// ProcessCampaign runs one processing attempt for a single ACTIVE campaign.
func (s *Service) ProcessCampaign(ctx context.Context, campaignID uuid.UUID, now time.Time) (Run, error) {
	c, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return Run{}, fmt.Errorf("get campaign: %w", err)
	}
	if c.Status != domaincampaign.StatusActive {
		return Run{}, fmt.Errorf("process campaign %s: %w", campaignID, ErrNotActive)
	}
	return s.process(ctx, c, now)
}

func (s *Service) process(ctx context.Context, c domaincampaign.Campaign, now time.Time) (Run, error) {
	run := Run{CampaignID: c.ID}
	if !c.WithinWindow(now) {
		run.Skipped, run.Reason = true, reasonOutsideWindow
		return run, nil
	}

	assignedToday, err := s.leads.CountAssignedSince(ctx, c.ID, domaincampaign.DayStart(now))
	if err != nil {
		return run, fmt.Errorf("count leads assigned today: %w", err)
	}
	remaining := c.Remaining(assignedToday)
	if remaining == 0 {
		run.Skipped, run.Reason = true, reasonDailyLimit
		return run, nil
	}

	queued, err := s.leads.ListUnassigned(ctx, c.ID, remaining)
	if err != nil {
		return run, fmt.Errorf("list unassigned leads: %w", err)
	}
	if len(queued) == 0 {
		run.Skipped, run.Reason = true, reasonNoLeads
		run.Completed, err = s.completeIfDrained(ctx, c)
		return run, err
	}

	ids := make([]uuid.UUID, len(queued))
	for i, l := range queued {
		ids[i] = l.LeadID
	}
	res := s.assigner.AssignLeadsToCampaignSenders(ctx, c.ID, ids)
	run.Result = &res
	if !res.Success {
		slog.WarnContext(ctx, "campaign assignment incomplete",
			"campaign_id", c.ID, "code", res.Code, "message", res.Message, "assigned", res.Assigned)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeCampaignProcessed, c.ID, c.ID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish CampaignProcessed event", "campaign_id", c.ID, "error", err)
	}
	return run, nil
}

// completeIfDrained marks a campaign COMPLETED once it has leads, none of
// them is waiting and none is still held by a sender.
func (s *Service) completeIfDrained(ctx context.Context, c domaincampaign.Campaign) (bool, error) {
	if c.TotalLeads == 0 {
		return false, nil
	}
	counts, err := s.leads.CountsBySender(ctx, c.ID)
	if err != nil {
		return false, fmt.Errorf("count leads by sender: %w", err)
	}
	for _, n := range counts {
		if n.Assigned > 0 {
			return false, nil
		}
	}
	if err := s.repo.UpdateStatus(ctx, c.ID, domaincampaign.StatusCompleted); err != nil {
		return false, fmt.Errorf("complete campaign: %w", err)
	}
	slog.InfoContext(ctx, "campaign completed", "campaign_id", c.ID, "total_leads", c.TotalLeads)
	return true, nil
}
