package lead

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainlead "github.com/alanyang/leadflow/internal/domain/lead"
)

const leadColumns = `campaign_id, lead_id, sender_id, status, COALESCE(notes, ''),
	created_at, updated_at, assigned_at, worked_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Add enrols leads and bumps the campaign's total_leads by the number of new rows.
func (r *Repository) Add(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) (int64, error) {
	if len(leadIDs) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `
		INSERT INTO campaign_leads (campaign_id, lead_id, status, created_at, updated_at)
		SELECT $1, id, 'UNASSIGNED', clock_timestamp(), clock_timestamp()
		FROM unnest($2::uuid[]) WITH ORDINALITY AS t(id, ord)
		ORDER BY ord
		ON CONFLICT (campaign_id, lead_id) DO NOTHING`,
		campaignID, leadIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting campaign leads: %w", err)
	}

	added := tag.RowsAffected()
	if added > 0 {
		if _, err := tx.Exec(ctx,
			`UPDATE campaigns SET total_leads = total_leads + $2, updated_at = NOW() WHERE id = $1`,
			campaignID, added,
		); err != nil {
			return 0, fmt.Errorf("updating campaign total: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

func (r *Repository) Get(ctx context.Context, campaignID, leadID uuid.UUID) (domainlead.CampaignLead, error) {
	query := `SELECT ` + leadColumns + ` FROM campaign_leads WHERE campaign_id = $1 AND lead_id = $2`

	l, err := scanLead(r.pool.QueryRow(ctx, query, campaignID, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainlead.CampaignLead{}, domainlead.ErrNotFound
		}
		return domainlead.CampaignLead{}, fmt.Errorf("querying campaign lead: %w", err)
	}
	return l, nil
}

func (r *Repository) List(ctx context.Context, filters domainlead.ListFilters) ([]domainlead.CampaignLead, error) {
	query := `SELECT ` + leadColumns + ` FROM campaign_leads WHERE campaign_id = $1`

	args := []any{filters.CampaignID}
	argIdx := 2

	if filters.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filters.Status))
		argIdx++
	}
	if filters.SenderID != nil {
		query += fmt.Sprintf(" AND sender_id = $%d", argIdx)
		args = append(args, *filters.SenderID)
		argIdx++
	}

	if filters.OldestFirst {
		query += " ORDER BY created_at ASC, lead_id ASC"
	} else {
		query += " ORDER BY created_at DESC, lead_id DESC"
	}
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing campaign leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *Repository) ListUnassigned(ctx context.Context, campaignID uuid.UUID, limit int) ([]domainlead.CampaignLead, error) {
	status := domainlead.StatusUnassigned
	return r.List(ctx, domainlead.ListFilters{
		CampaignID:  campaignID,
		Status:      &status,
		Limit:       limit,
		OldestFirst: true,
	})
}

// Assign is idempotent for the same sender: replaying a committed assignment
// matches the second branch of the guard.
func (r *Repository) Assign(ctx context.Context, campaignID, leadID, senderID uuid.UUID) error {
	query := `
		UPDATE campaign_leads
		SET status = 'ASSIGNED', sender_id = $3,
			assigned_at = COALESCE(assigned_at, NOW()), updated_at = NOW()
		WHERE campaign_id = $1 AND lead_id = $2
			AND (status = 'UNASSIGNED' OR (status = 'ASSIGNED' AND sender_id = $3))`

	tag, err := r.pool.Exec(ctx, query, campaignID, leadID, senderID)
	if err != nil {
		return fmt.Errorf("assigning lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, campaignID, leadID, domainlead.ErrNotAssignable)
	}
	return nil
}

func (r *Repository) MarkWorked(ctx context.Context, campaignID, leadID, senderID uuid.UUID, outcome domainlead.Outcome) error {
	query := `
		UPDATE campaign_leads
		SET status = $4, notes = $5, worked_at = NOW(), updated_at = NOW()
		WHERE campaign_id = $1 AND lead_id = $2 AND sender_id = $3 AND status = 'ASSIGNED'`

	tag, err := r.pool.Exec(ctx, query, campaignID, leadID, senderID, string(outcome.Status), nilIfEmpty(outcome.Notes))
	if err != nil {
		return fmt.Errorf("marking lead worked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, campaignID, leadID, domainlead.ErrNotWorkable)
	}
	return nil
}

func (r *Repository) CountAssignedSince(ctx context.Context, campaignID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM campaign_leads WHERE campaign_id = $1 AND assigned_at >= $2`,
		campaignID, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting leads assigned since %s: %w", since.Format(time.RFC3339), err)
	}
	return n, nil
}

func (r *Repository) CountsBySender(ctx context.Context, campaignID uuid.UUID) (map[uuid.UUID]domainlead.Counts, error) {
	query := `
		SELECT sender_id,
			COUNT(*) FILTER (WHERE status = 'ASSIGNED'),
			COUNT(*) FILTER (WHERE status IN ('CONTACTED', 'BOUNCED', 'FAILED', 'SKIPPED'))
		FROM campaign_leads
		WHERE campaign_id = $1 AND sender_id IS NOT NULL
		GROUP BY sender_id`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("counting leads by sender: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]domainlead.Counts)
	for rows.Next() {
		var id uuid.UUID
		var c domainlead.Counts
		if err := rows.Scan(&id, &c.Assigned, &c.Worked); err != nil {
			return nil, fmt.Errorf("scanning lead counts: %w", err)
		}
		out[id] = c
	}
	return out, rows.Err()
}

// missOrConflict distinguishes a missing row from one whose state refused the write.
func (r *Repository) missOrConflict(ctx context.Context, campaignID, leadID uuid.UUID, conflict error) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM campaign_leads WHERE campaign_id = $1 AND lead_id = $2)`,
		campaignID, leadID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking campaign lead: %w", err)
	}
	if !exists {
		return fmt.Errorf("lead %s: %w", leadID, domainlead.ErrNotFound)
	}
	return fmt.Errorf("lead %s: %w", leadID, conflict)
}

func scanLead(row pgx.Row) (domainlead.CampaignLead, error) {
	var l domainlead.CampaignLead
	err := row.Scan(
		&l.CampaignID, &l.LeadID, &l.SenderID, &l.Status, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt, &l.AssignedAt, &l.WorkedAt,
	)
	return l, err
}

func scanLeads(rows pgx.Rows) ([]domainlead.CampaignLead, error) {
	var leads []domainlead.CampaignLead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning campaign lead row: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaign lead rows: %w", err)
	}
	return leads, nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
