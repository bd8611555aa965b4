//go:build integration

package lead_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgcampaign "github.com/alanyang/leadflow/internal/adapter/postgres/campaign"
	pglead "github.com/alanyang/leadflow/internal/adapter/postgres/lead"
	domainlead "github.com/alanyang/leadflow/internal/domain/lead"
	"github.com/alanyang/leadflow/internal/testutil"
)

func TestAdd_SkipsDuplicatesAndCountsTotal(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pglead.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)

	ids := testutil.NewLeadIDs(3)
	added, err := repo.Add(ctx, c.ID, ids)
	require.NoError(t, err)
	assert.EqualValues(t, 3, added)

	added, err = repo.Add(ctx, c.ID, append(ids[:1:1], uuid.New()))
	require.NoError(t, err)
	assert.EqualValues(t, 1, added)

	got, err := pgcampaign.New(pool).GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.TotalLeads)
}

func TestListUnassigned_FIFO(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pglead.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)

	ids := testutil.NewLeadIDs(4)
	for _, id := range ids {
		_, err := repo.Add(ctx, c.ID, []uuid.UUID{id})
		require.NoError(t, err)
	}

	got, err := repo.ListUnassigned(ctx, c.ID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[0], got[0].LeadID)
	assert.Equal(t, ids[1], got[1].LeadID)
}

func TestAssign_Guard(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pglead.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)
	a := testutil.MakeSender(t, ctx, pool, c.ID, 5)
	b := testutil.MakeSender(t, ctx, pool, c.ID, 5)

	id := uuid.New()
	_, err := repo.Add(ctx, c.ID, []uuid.UUID{id})
	require.NoError(t, err)

	require.NoError(t, repo.Assign(ctx, c.ID, id, a.ID))
	// Replaying for the same sender is a no-op success.
	require.NoError(t, repo.Assign(ctx, c.ID, id, a.ID))
	// Another sender cannot take it.
	assert.ErrorIs(t, repo.Assign(ctx, c.ID, id, b.ID), domainlead.ErrNotAssignable)
	// Unknown leads are reported as missing.
	assert.ErrorIs(t, repo.Assign(ctx, c.ID, uuid.New(), a.ID), domainlead.ErrNotFound)

	got, err := repo.Get(ctx, c.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domainlead.StatusAssigned, got.Status)
	require.NotNil(t, got.SenderID)
	assert.Equal(t, a.ID, *got.SenderID)
	assert.NotNil(t, got.AssignedAt)
}

func TestMarkWorked(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pglead.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)
	a := testutil.MakeSender(t, ctx, pool, c.ID, 5)
	b := testutil.MakeSender(t, ctx, pool, c.ID, 5)

	id := uuid.New()
	_, err := repo.Add(ctx, c.ID, []uuid.UUID{id})
	require.NoError(t, err)

	outcome := domainlead.Outcome{Status: domainlead.StatusContacted, EmailSent: true, Notes: "intro sent"}

	// Not yet assigned.
	assert.ErrorIs(t, repo.MarkWorked(ctx, c.ID, id, a.ID, outcome), domainlead.ErrNotWorkable)

	require.NoError(t, repo.Assign(ctx, c.ID, id, a.ID))
	assert.ErrorIs(t, repo.MarkWorked(ctx, c.ID, id, b.ID, outcome), domainlead.ErrNotWorkable)
	require.NoError(t, repo.MarkWorked(ctx, c.ID, id, a.ID, outcome))
	// Terminal leads cannot be worked twice.
	assert.ErrorIs(t, repo.MarkWorked(ctx, c.ID, id, a.ID, outcome), domainlead.ErrNotWorkable)

	got, err := repo.Get(ctx, c.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domainlead.StatusContacted, got.Status)
	assert.Equal(t, "intro sent", got.Notes)
	assert.NotNil(t, got.WorkedAt)
}

func TestCountsBySender(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pglead.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)
	a := testutil.MakeSender(t, ctx, pool, c.ID, 5)

	ids := testutil.NewLeadIDs(3)
	_, err := repo.Add(ctx, c.ID, ids)
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, repo.Assign(ctx, c.ID, id, a.ID))
	}
	require.NoError(t, repo.MarkWorked(ctx, c.ID, ids[0], a.ID, domainlead.Outcome{Status: domainlead.StatusSkipped}))

	counts, err := repo.CountsBySender(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domainlead.Counts{Assigned: 2, Worked: 1}, counts[a.ID])
}

func TestCountAssignedSince(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pglead.New(pool)
	c := testutil.MakeCampaign(t, ctx, pool)
	snd := testutil.MakeSender(t, ctx, pool, c.ID, 5)

	ids := testutil.NewLeadIDs(3)
	_, err := repo.Add(ctx, c.ID, ids)
	require.NoError(t, err)
	require.NoError(t, repo.Assign(ctx, c.ID, ids[0], snd.ID))
	require.NoError(t, repo.Assign(ctx, c.ID, ids[1], snd.ID))
	// Worked leads still count toward the day.
	require.NoError(t, repo.MarkWorked(ctx, c.ID, ids[1], snd.ID, domainlead.Outcome{Status: domainlead.StatusSkipped}))

	n, err := repo.CountAssignedSince(ctx, c.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountAssignedSince(ctx, c.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}
