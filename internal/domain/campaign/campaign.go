package campaign

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLeadsPerDay = 10
	DefaultWindowStart = 9 * time.Hour
	DefaultWindowEnd   = 17 * time.Hour
)

var ErrNotFound = errors.New("campaign not found")

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusCompleted Status = "COMPLETED"
)

type Campaign struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	LeadsPerDay *int      `json:"leads_per_day,omitempty"`
	// WindowStart and WindowEnd are offsets from midnight UTC. A nil bound
	// falls back to the 09:00–17:00 default.
	WindowStart   *time.Duration `json:"window_start,omitempty"`
	WindowEnd     *time.Duration `json:"window_end,omitempty"`
	TotalLeads    int64          `json:"total_leads"`
	LeadsWorked   int64          `json:"leads_worked"`
	EmailsSent    int64          `json:"emails_sent"`
	EmailsOpened  int64          `json:"emails_opened"`
	EmailsClicked int64          `json:"emails_clicked"`
	EmailsReplied int64          `json:"emails_replied"`
	EmailsBounced int64          `json:"emails_bounced"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func New(name string) Campaign {
	now := time.Now().UTC()
	return Campaign{
		ID:        uuid.New(),
		Name:      name,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DailyLimit is the number of leads the processor may assign per UTC day,
// summed over every run of that day.
func (c Campaign) DailyLimit() int {
	if c.LeadsPerDay == nil || *c.LeadsPerDay <= 0 {
		return DefaultLeadsPerDay
	}
	return *c.LeadsPerDay
}

// Remaining is what is left of the daily limit once assignedToday leads
// have been handed out.
func (c Campaign) Remaining(assignedToday int) int {
	return max(0, c.DailyLimit()-assignedToday)
}

// DayStart returns midnight UTC of the day containing now.
func DayStart(now time.Time) time.Time {
	return now.UTC().Truncate(24 * time.Hour)
}

func (c Campaign) Window() (start, end time.Duration) {
	start, end = DefaultWindowStart, DefaultWindowEnd
	if c.WindowStart != nil {
		start = *c.WindowStart
	}
	if c.WindowEnd != nil {
		end = *c.WindowEnd
	}
	return start, end
}

// WithinWindow compares the minute-of-day of now (in UTC) against the
// campaign's sending window, inclusive on both ends.
func (c Campaign) WithinWindow(now time.Time) bool {
	now = now.UTC()
	current := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute
	start, end := c.Window()
	return current >= start.Truncate(time.Minute) && current <= end.Truncate(time.Minute)
}

type ListFilters struct {
	Status *Status
}
