// Package distribution is the lead distribution engine: it deals a batch of
// campaign leads across the campaign's senders within their daily quotas, and
// keeps each sender's queue topped up as work on single leads completes.
//
// Public operations never return Go errors for domain or persistence
// failures. They return a result carrying Success, a machine-readable Code
// and a human-readable Message.
package distribution

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/leadflow/internal/domain/allocation"
	"github.com/alanyang/leadflow/internal/domain/event"
	"github.com/alanyang/leadflow/internal/domain/lead"
	portcache "github.com/alanyang/leadflow/internal/port/cache"
	portcampaign "github.com/alanyang/leadflow/internal/port/campaign"
	portbus "github.com/alanyang/leadflow/internal/port/eventbus"
	portlead "github.com/alanyang/leadflow/internal/port/lead"
	portlocker "github.com/alanyang/leadflow/internal/port/locker"
	portnotifier "github.com/alanyang/leadflow/internal/port/notifier"
	portsender "github.com/alanyang/leadflow/internal/port/sender"
)

type Code string

const (
	CodeOK                 Code = "ok"
	CodeNoSenders          Code = "no_senders"
	CodeQuotaReached       Code = "quota_reached"
	CodeInvalidOutcome     Code = "invalid_outcome"
	CodePersistenceFailure Code = "persistence_failure"
	CodeNextLeadFailed     Code = "next_lead_failed"
)

const (
	MsgNoSenders        = "No senders available for this campaign"
	MsgAllExhausted     = "All senders have reached their daily quota"
	MsgQuotaReached     = "Lead recorded; sender has reached daily quota"
	MsgNoLeadsRemain    = "Lead recorded; no unassigned leads remain"
	MsgNextLeadAssigned = "Lead recorded; next lead assigned"
	msgNextLeadFailure  = "Lead recorded but next-lead lookup failed: "
)

var (
	ErrNoSendersAvailable = errors.New("no senders available")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidOutcome     = errors.New("invalid work outcome")
)

// maxClaimAttempts bounds how often the advancer refetches when another
// worker claims the lead it picked.
const maxClaimAttempts = 3

// AssignResult reports one assignment pass. Watermark is the number of input
// leads, counted from the start, that are known to be persisted as ASSIGNED;
// retrying with leadIDs[Watermark:] resumes an interrupted pass.
type AssignResult struct {
	Success     bool                    `json:"success"`
	Code        Code                    `json:"code"`
	Message     string                  `json:"message"`
	Assignments []allocation.Assignment `json:"assignments,omitempty"`
	Assigned    int                     `json:"assigned"`
	Watermark   int                     `json:"watermark"`
}

// Err maps a failed result onto a sentinel so callers outside HTTP can use errors.Is.
func (r AssignResult) Err() error {
	return codeErr(r.Success, r.Code, r.Message)
}

// WorkResult reports one work completion. NextLead is set only when a new
// lead was assigned to the sender.
type WorkResult struct {
	Success  bool               `json:"success"`
	Code     Code               `json:"code"`
	Message  string             `json:"message"`
	NextLead *lead.CampaignLead `json:"next_lead,omitempty"`
}

func (r WorkResult) Err() error {
	return codeErr(r.Success, r.Code, r.Message)
}

func codeErr(success bool, code Code, msg string) error {
	if success {
		return nil
	}
	switch code {
	case CodeNoSenders:
		return errors.Join(ErrNoSendersAvailable, errors.New(msg))
	case CodeInvalidOutcome:
		return errors.Join(ErrInvalidOutcome, errors.New(msg))
	default:
		return errors.Join(ErrPersistence, errors.New(msg))
	}
}

type Service struct {
	senders   portsender.Repository
	leads     portlead.Repository
	campaigns portcampaign.Repository
	bus       portbus.EventBus
	notifier  portnotifier.SenderNotifier
	locker    portlocker.AdvisoryLocker
	cache     portcache.Cache
	cacheTTL  time.Duration
}

// NewService wires the engine. cache may be nil, which disables status caching.
func NewService(
	senders portsender.Repository,
	leads portlead.Repository,
	campaigns portcampaign.Repository,
	bus portbus.EventBus,
	notifier portnotifier.SenderNotifier,
	locker portlocker.AdvisoryLocker,
	cache portcache.Cache,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		senders:   senders,
		leads:     leads,
		campaigns: campaigns,
		bus:       bus,
		notifier:  notifier,
		locker:    locker,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

func (s *Service) publish(ctx context.Context, t event.Type, entityID, campaignID uuid.UUID) {
	if err := s.bus.Publish(ctx, event.New(t, entityID, campaignID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "type", t, "entity_id", entityID, "error", err)
	}
}

func (s *Service) notifyAssigned(ctx context.Context, campaignID, senderID, leadID uuid.UUID) {
	payload := map[string]string{
		"event":       string(event.TypeLeadAssigned),
		"campaign_id": campaignID.String(),
		"lead_id":     leadID.String(),
	}
	if err := s.notifier.NotifySender(ctx, senderID, payload); err != nil {
		slog.WarnContext(ctx, "failed to notify sender session", "sender_id", senderID, "lead_id", leadID, "error", err)
	}
}

// lockKey hashes (campaignID, senderID) to a stable int64 for pg_advisory_lock.
func lockKey(campaignID, senderID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(campaignID[:])
	h.Write(senderID[:])
	return int64(h.Sum64())
}
