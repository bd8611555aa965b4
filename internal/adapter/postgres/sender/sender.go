package sender

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/leadflow/internal/domain/lead"
	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
)

const senderColumns = `s.id, s.email, s.name, COALESCE(s.title, ''), s.daily_quota, s.emails_sent_today,
	s.is_active, s.leads_worked, s.emails_sent, s.emails_opened, s.emails_clicked,
	s.emails_replied, s.emails_bounced, s.last_sent_at, s.created_at, s.updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, s domainsender.Sender) (domainsender.Sender, error) {
	query := `
		INSERT INTO senders AS s (id, email, name, title, daily_quota, emails_sent_today,
			is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING ` + senderColumns

	created, err := scanSender(r.pool.QueryRow(ctx, query,
		s.ID, s.Email, s.Name, nilIfEmpty(s.Title), s.DailyQuota, s.EmailsSentToday,
		s.Active, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return domainsender.Sender{}, fmt.Errorf("inserting sender: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domainsender.Sender, error) {
	query := `SELECT ` + senderColumns + ` FROM senders s WHERE s.id = $1`
	return r.getOne(ctx, query, id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (domainsender.Sender, error) {
	query := `SELECT ` + senderColumns + ` FROM senders s WHERE lower(s.email) = lower($1)`
	return r.getOne(ctx, query, email)
}

func (r *Repository) AddToCampaign(ctx context.Context, campaignID, senderID uuid.UUID) error {
	query := `
		INSERT INTO campaign_senders (campaign_id, sender_id, is_active, joined_at)
		VALUES ($1, $2, TRUE, NOW())
		ON CONFLICT (campaign_id, sender_id) DO UPDATE SET is_active = TRUE`

	if _, err := r.pool.Exec(ctx, query, campaignID, senderID); err != nil {
		return fmt.Errorf("adding sender to campaign: %w", err)
	}
	return nil
}

// ListByCampaign orders by join time so repeated passes deal leads in a
// stable sender order.
func (r *Repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domainsender.Sender, error) {
	query := `
		SELECT ` + senderColumns + `
		FROM senders s
		JOIN campaign_senders cs ON cs.sender_id = s.id
		WHERE cs.campaign_id = $1 AND cs.is_active AND s.is_active
		ORDER BY cs.joined_at, s.id`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing campaign senders: %w", err)
	}
	defer rows.Close()

	var out []domainsender.Sender
	for rows.Next() {
		s, err := scanSender(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sender row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) GetForCampaign(ctx context.Context, campaignID, senderID uuid.UUID) (domainsender.Sender, error) {
	query := `
		SELECT ` + senderColumns + `
		FROM senders s
		JOIN campaign_senders cs ON cs.sender_id = s.id
		WHERE cs.campaign_id = $1 AND s.id = $2 AND cs.is_active AND s.is_active`

	return r.getOne(ctx, query, campaignID, senderID)
}

func (r *Repository) IncrementStats(ctx context.Context, senderID uuid.UUID, d lead.Deltas) error {
	query := `
		UPDATE senders SET
			leads_worked      = leads_worked + $2,
			emails_sent       = emails_sent + $3,
			emails_opened     = emails_opened + $4,
			emails_clicked    = emails_clicked + $5,
			emails_replied    = emails_replied + $6,
			emails_bounced    = emails_bounced + $7,
			emails_sent_today = COALESCE(emails_sent_today, 0) + $3,
			last_sent_at      = CASE WHEN $3 > 0 THEN NOW() ELSE last_sent_at END,
			updated_at        = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, senderID,
		d.LeadsWorked, d.EmailsSent, d.EmailsOpened, d.EmailsClicked, d.EmailsReplied, d.EmailsBounced,
	)
	if err != nil {
		return fmt.Errorf("incrementing sender stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sender %s: %w", senderID, domainsender.ErrNotFound)
	}
	return nil
}

func (r *Repository) ResetDailyCounts(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE senders SET emails_sent_today = 0, updated_at = NOW()
		WHERE emails_sent_today IS DISTINCT FROM 0`)
	if err != nil {
		return 0, fmt.Errorf("resetting daily counts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (domainsender.Sender, error) {
	s, err := scanSender(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainsender.Sender{}, domainsender.ErrNotFound
		}
		return domainsender.Sender{}, fmt.Errorf("querying sender: %w", err)
	}
	return s, nil
}

func scanSender(row pgx.Row) (domainsender.Sender, error) {
	var s domainsender.Sender
	err := row.Scan(
		&s.ID, &s.Email, &s.Name, &s.Title, &s.DailyQuota, &s.EmailsSentToday,
		&s.Active, &s.LeadsWorked, &s.EmailsSent, &s.EmailsOpened, &s.EmailsClicked,
		&s.EmailsReplied, &s.EmailsBounced, &s.LastSentAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
