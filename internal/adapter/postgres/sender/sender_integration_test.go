//go:build integration

package sender_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgsender "github.com/alanyang/leadflow/internal/adapter/postgres/sender"
	"github.com/alanyang/leadflow/internal/domain/lead"
	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
	"github.com/alanyang/leadflow/internal/testutil"
)

func TestCreateAndGet_NullableQuota(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgsender.New(pool)

	s := domainsender.New(uuid.New().String()[:8]+"@example.com", "Nullable", 0)
	s.DailyQuota = nil
	s.EmailsSentToday = nil
	created, err := repo.Create(ctx, s)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DailyQuota)
	assert.Equal(t, domainsender.DefaultDailyQuota, got.Capacity())

	byEmail, err := repo.GetByEmail(ctx, s.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainsender.ErrNotFound)
}

func TestListByCampaign_ActiveInJoinOrder(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgsender.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)

	a := testutil.MakeSender(t, ctx, pool, c.ID, 5)
	b := testutil.MakeSender(t, ctx, pool, c.ID, 5)
	inactive := testutil.MakeSender(t, ctx, pool, c.ID, 5)
	_, err := pool.Exec(ctx,
		`UPDATE campaign_senders SET is_active = FALSE WHERE campaign_id = $1 AND sender_id = $2`,
		c.ID, inactive.ID)
	require.NoError(t, err)

	got, err := repo.ListByCampaign(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)

	_, err = repo.GetForCampaign(ctx, c.ID, inactive.ID)
	assert.ErrorIs(t, err, domainsender.ErrNotFound)
}

func TestIncrementStatsAndReset(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgsender.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)
	s := testutil.MakeSender(t, ctx, pool, c.ID, 3)

	d := lead.Outcome{Status: lead.StatusContacted, EmailSent: true, EmailOpened: true}.Deltas()
	require.NoError(t, repo.IncrementStats(ctx, s.ID, d))
	require.NoError(t, repo.IncrementStats(ctx, s.ID, d))

	got, err := repo.GetForCampaign(ctx, c.ID, s.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.LeadsWorked)
	assert.EqualValues(t, 2, got.EmailsSent)
	assert.EqualValues(t, 2, got.EmailsOpened)
	assert.Equal(t, 2, got.SentToday())
	assert.Equal(t, 1, got.Capacity())
	assert.NotNil(t, got.LastSentAt)

	n, err := repo.ResetDailyCounts(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SentToday())

	assert.ErrorIs(t, repo.IncrementStats(ctx, uuid.New(), d), domainsender.ErrNotFound)
}
