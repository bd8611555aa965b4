package lead

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("campaign lead not found")
	// ErrNotAssignable is returned when a lead is no longer UNASSIGNED (or is
	// ASSIGNED to a different sender) at the moment of the write.
	ErrNotAssignable = errors.New("campaign lead not assignable")
	// ErrNotWorkable is returned when a work outcome targets a lead that is not
	// ASSIGNED to the reporting sender.
	ErrNotWorkable = errors.New("campaign lead not assigned to sender")
)

type Status string

const (
	StatusUnassigned Status = "UNASSIGNED"
	StatusAssigned   Status = "ASSIGNED"
	StatusContacted  Status = "CONTACTED"
	StatusBounced    Status = "BOUNCED"
	StatusFailed     Status = "FAILED"
	StatusSkipped    Status = "SKIPPED"
)

var validTransitions = map[Status][]Status{
	StatusUnassigned: {StatusAssigned},
	StatusAssigned:   {StatusContacted, StatusBounced, StatusFailed, StatusSkipped},
	StatusContacted:  {},
	StatusBounced:    {},
	StatusFailed:     {},
	StatusSkipped:    {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(validTransitions[s]) == 0
}

// IsWorkOutcome reports whether s may be recorded as the result of working a lead.
func (s Status) IsWorkOutcome() bool {
	return StatusAssigned.CanTransitionTo(s)
}

// TerminalStatuses lists every status a worked lead can end in.
func TerminalStatuses() []Status {
	return []Status{StatusContacted, StatusBounced, StatusFailed, StatusSkipped}
}

// CampaignLead is a lead's assignment record within one campaign.
type CampaignLead struct {
	CampaignID uuid.UUID  `json:"campaign_id"`
	LeadID     uuid.UUID  `json:"lead_id"`
	SenderID   *uuid.UUID `json:"sender_id,omitempty"`
	Status     Status     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
	WorkedAt   *time.Time `json:"worked_at,omitempty"`
}

func New(campaignID, leadID uuid.UUID) CampaignLead {
	now := time.Now().UTC()
	return CampaignLead{
		CampaignID: campaignID,
		LeadID:     leadID,
		Status:     StatusUnassigned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Outcome is what a sender reports after working one lead.
type Outcome struct {
	Status       Status `json:"status"`
	EmailSent    bool   `json:"email_sent"`
	EmailOpened  bool   `json:"email_opened"`
	EmailClicked bool   `json:"email_clicked"`
	EmailReplied bool   `json:"email_replied"`
	Notes        string `json:"notes,omitempty"`
}

// Deltas are additive counter increments applied to sender and campaign stats.
type Deltas struct {
	LeadsWorked   int `json:"leads_worked"`
	EmailsSent    int `json:"emails_sent"`
	EmailsOpened  int `json:"emails_opened"`
	EmailsClicked int `json:"emails_clicked"`
	EmailsReplied int `json:"emails_replied"`
	EmailsBounced int `json:"emails_bounced"`
}

func (o Outcome) Deltas() Deltas {
	return Deltas{
		LeadsWorked:   1,
		EmailsSent:    boolInt(o.EmailSent),
		EmailsOpened:  boolInt(o.EmailOpened),
		EmailsClicked: boolInt(o.EmailClicked),
		EmailsReplied: boolInt(o.EmailReplied),
		EmailsBounced: boolInt(o.Status == StatusBounced),
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Counts summarises one sender's leads within a campaign.
type Counts struct {
	Assigned int `json:"assigned"`
	Worked   int `json:"worked"`
}

type ListFilters struct {
	CampaignID  uuid.UUID
	Status      *Status
	SenderID    *uuid.UUID
	Limit       int
	OldestFirst bool // ORDER BY created_at ASC (default is DESC)
}
