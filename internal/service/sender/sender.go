package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/alanyang/leadflow/internal/domain/event"
	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
	portbus "github.com/alanyang/leadflow/internal/port/eventbus"
	portsender "github.com/alanyang/leadflow/internal/port/sender"
)

var ErrInvalidEmail = errors.New("sender email is required")

type Service struct {
	repo portsender.Repository
	bus  portbus.EventBus
}

func NewService(repo portsender.Repository, bus portbus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Register creates a sender, or returns the existing one with the same email.
// A non-positive quota leaves the default in place.
func (s *Service) Register(ctx context.Context, email, name string, dailyQuota int) (domainsender.Sender, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domainsender.Sender{}, ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainsender.ErrNotFound) {
		return domainsender.Sender{}, fmt.Errorf("get sender by email: %w", err)
	}

	snd := domainsender.New(email, name, dailyQuota)
	if dailyQuota <= 0 {
		snd.DailyQuota = nil
	}
	created, err := s.repo.Create(ctx, snd)
	if err != nil {
		return domainsender.Sender{}, fmt.Errorf("create sender: %w", err)
	}
	slog.InfoContext(ctx, "sender registered", "sender_id", created.ID, "email", created.Email)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domainsender.Sender, error) {
	snd, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainsender.Sender{}, fmt.Errorf("get sender: %w", err)
	}
	return snd, nil
}

// ResetDailyQuotas zeroes every sender's sent-today counter. It runs once per
// day from the scheduler.
func (s *Service) ResetDailyQuotas(ctx context.Context) (int64, error) {
	n, err := s.repo.ResetDailyCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset daily counts: %w", err)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeSenderQuotaReset, uuid.Nil, uuid.Nil)); err != nil {
		slog.ErrorContext(ctx, "failed to publish SenderQuotaReset event", "error", err)
	}
	slog.InfoContext(ctx, "daily sender quotas reset", "senders", n)
	return n, nil
}
