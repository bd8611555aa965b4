package sender

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultDailyQuota applies when a sender record carries no quota.
const DefaultDailyQuota = 20

var ErrNotFound = errors.New("sender not found")

// Sender is an authorised outbound email identity as seen by one campaign.
// DailyQuota and EmailsSentToday are nullable in storage; use Capacity to read
// them with defaults applied.
type Sender struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Title           string     `json:"title,omitempty"`
	DailyQuota      *int       `json:"daily_quota,omitempty"`
	EmailsSentToday *int       `json:"emails_sent_today,omitempty"`
	Active          bool       `json:"is_active"`
	LeadsWorked     int64      `json:"leads_worked"`
	EmailsSent      int64      `json:"emails_sent"`
	EmailsOpened    int64      `json:"emails_opened"`
	EmailsClicked   int64      `json:"emails_clicked"`
	EmailsReplied   int64      `json:"emails_replied"`
	EmailsBounced   int64      `json:"emails_bounced"`
	LastSentAt      *time.Time `json:"last_sent_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func New(email, name string, dailyQuota int) Sender {
	now := time.Now().UTC()
	sent := 0
	return Sender{
		ID:              uuid.New(),
		Email:           email,
		Name:            name,
		DailyQuota:      &dailyQuota,
		EmailsSentToday: &sent,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Quota returns the daily quota with the default applied. A stored zero is a
// real quota, not a missing one.
func (s Sender) Quota() int {
	if s.DailyQuota == nil {
		return DefaultDailyQuota
	}
	if *s.DailyQuota < 0 {
		return 0
	}
	return *s.DailyQuota
}

func (s Sender) SentToday() int {
	if s.EmailsSentToday == nil || *s.EmailsSentToday < 0 {
		return 0
	}
	return *s.EmailsSentToday
}

// Capacity is max(0, quota - sent today).
func (s Sender) Capacity() int {
	return max(0, s.Quota()-s.SentToday())
}

func (s Sender) Exhausted() bool { return s.Capacity() == 0 }
