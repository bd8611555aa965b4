//go:build integration

package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	pgcampaign "github.com/alanyang/leadflow/internal/adapter/postgres/campaign"
	pgsender "github.com/alanyang/leadflow/internal/adapter/postgres/sender"
	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
)

// MakeCampaign inserts an ACTIVE campaign with a unique name.
func MakeCampaign(t *testing.T, ctx context.Context, pool *pgxpool.Pool) domaincampaign.Campaign {
	t.Helper()
	c := domaincampaign.New("c-" + uuid.New().String()[:8])
	c.Status = domaincampaign.StatusActive
	created, err := pgcampaign.New(pool).Create(ctx, c)
	require.NoError(t, err)
	return created
}

// MakeSender inserts a sender with the given quota and links it to campaignID.
func MakeSender(t *testing.T, ctx context.Context, pool *pgxpool.Pool, campaignID uuid.UUID, quota int) domainsender.Sender {
	t.Helper()
	repo := pgsender.New(pool)
	s := domainsender.New(uuid.New().String()[:8]+"@example.com", "Sender", quota)
	created, err := repo.Create(ctx, s)
	require.NoError(t, err)
	require.NoError(t, repo.AddToCampaign(ctx, campaignID, created.ID))
	return created
}

func NewLeadIDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}
