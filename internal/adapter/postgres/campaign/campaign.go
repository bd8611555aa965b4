package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/domain/lead"
)

const campaignColumns = `id, name, COALESCE(description, ''), status, leads_per_day, window_start, window_end,
	total_leads, leads_worked, emails_sent, emails_opened, emails_clicked, emails_replied, emails_bounced,
	started_at, completed_at, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, c domaincampaign.Campaign) (domaincampaign.Campaign, error) {
	query := `
		INSERT INTO campaigns (id, name, description, status, leads_per_day, window_start, window_end,
			started_at, completed_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING ` + campaignColumns

	created, err := scanCampaign(r.pool.QueryRow(ctx, query,
		c.ID, c.Name, nilIfEmpty(c.Description), c.Status, c.LeadsPerDay,
		toPgTime(c.WindowStart), toPgTime(c.WindowEnd),
		c.StartedAt, c.CompletedAt, c.CreatedAt, c.UpdatedAt,
	))
	if err != nil {
		return domaincampaign.Campaign{}, fmt.Errorf("inserting campaign: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domaincampaign.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	c, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domaincampaign.Campaign{}, domaincampaign.ErrNotFound
		}
		return domaincampaign.Campaign{}, fmt.Errorf("querying campaign: %w", err)
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context, filters domaincampaign.ListFilters) ([]domaincampaign.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`

	args := []any{}
	if filters.Status != nil {
		query += " AND status = $1"
		args = append(args, string(*filters.Status))
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var out []domaincampaign.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning campaign row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatus stamps started_at on the first activation and completed_at on completion.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domaincampaign.Status) error {
	query := `
		UPDATE campaigns SET
			status = $2,
			started_at = CASE WHEN $2 = 'ACTIVE' THEN COALESCE(started_at, NOW()) ELSE started_at END,
			completed_at = CASE WHEN $2 = 'COMPLETED' THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("updating campaign status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", id, domaincampaign.ErrNotFound)
	}
	return nil
}

func (r *Repository) IncrementStats(ctx context.Context, campaignID uuid.UUID, d lead.Deltas) error {
	query := `
		UPDATE campaigns SET
			leads_worked   = leads_worked + $2,
			emails_sent    = emails_sent + $3,
			emails_opened  = emails_opened + $4,
			emails_clicked = emails_clicked + $5,
			emails_replied = emails_replied + $6,
			emails_bounced = emails_bounced + $7,
			updated_at     = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, campaignID,
		d.LeadsWorked, d.EmailsSent, d.EmailsOpened, d.EmailsClicked, d.EmailsReplied, d.EmailsBounced,
	)
	if err != nil {
		return fmt.Errorf("incrementing campaign stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", campaignID, domaincampaign.ErrNotFound)
	}
	return nil
}

func scanCampaign(row pgx.Row) (domaincampaign.Campaign, error) {
	var c domaincampaign.Campaign
	var start, end pgtype.Time
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Status, &c.LeadsPerDay, &start, &end,
		&c.TotalLeads, &c.LeadsWorked, &c.EmailsSent, &c.EmailsOpened, &c.EmailsClicked,
		&c.EmailsReplied, &c.EmailsBounced,
		&c.StartedAt, &c.CompletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domaincampaign.Campaign{}, err
	}
	c.WindowStart = fromPgTime(start)
	c.WindowEnd = fromPgTime(end)
	return c, nil
}

func toPgTime(d *time.Duration) pgtype.Time {
	if d == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) *time.Duration {
	if !t.Valid {
		return nil
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return &d
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
