package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domaincampaign "github.com/alanyang/leadflow/internal/domain/campaign"
	"github.com/alanyang/leadflow/internal/domain/lead"
	domainsender "github.com/alanyang/leadflow/internal/domain/sender"
	"github.com/alanyang/leadflow/internal/mocks"
	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
	"github.com/alanyang/leadflow/internal/service/distribution"
	sendersvc "github.com/alanyang/leadflow/internal/service/sender"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type toolsDeps struct {
	senders   *mocks.MockSenderRepository
	leads     *mocks.MockLeadRepository
	campaigns *mocks.MockCampaignRepository
	bus       *mocks.MockEventBus
	notifier  *mocks.MockSenderNotifier
	locker    *mocks.MockAdvisoryLocker
}

type toolsSvcs struct {
	dist      *distribution.Service
	senders   *sendersvc.Service
	campaigns *campaignsvc.Service
}

func newToolsDeps(t *testing.T) (toolsSvcs, toolsDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := toolsDeps{
		senders:   mocks.NewMockSenderRepository(ctrl),
		leads:     mocks.NewMockLeadRepository(ctrl),
		campaigns: mocks.NewMockCampaignRepository(ctrl),
		bus:       mocks.NewMockEventBus(ctrl),
		notifier:  mocks.NewMockSenderNotifier(ctrl),
		locker:    mocks.NewMockAdvisoryLocker(ctrl),
	}
	dist := distribution.NewService(d.senders, d.leads, d.campaigns, d.bus, d.notifier, d.locker, nil, 0)
	return toolsSvcs{
		dist:      dist,
		senders:   sendersvc.NewService(d.senders, d.bus),
		campaigns: campaignsvc.NewService(d.campaigns, d.leads, d.senders, dist, d.bus),
	}, d
}

func makeReq(args map[string]any) mcpmcp.CallToolRequest {
	var req mcpmcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(r *mcpmcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	b, _ := json.Marshal(r.Content[0])
	var m map[string]interface{}
	json.Unmarshal(b, &m) //nolint:errcheck
	if t, ok := m["text"].(string); ok {
		return t
	}
	return ""
}

// ── registerSenderHandler ─────────────────────────────────────────────────────

func TestRegisterSenderHandler(t *testing.T) {
	tests := []struct {
		name         string
		args         map[string]any
		setup        func(d toolsDeps)
		wantContains string
	}{
		{
			name:         "invalid campaign_id",
			args:         map[string]any{"campaign_id": "nope", "email": "a@example.com"},
			setup:        func(d toolsDeps) {},
			wantContains: "error: invalid campaign_id",
		},
		{
			name:         "blank email",
			args:         map[string]any{"campaign_id": uuid.NewString(), "email": ""},
			setup:        func(d toolsDeps) {},
			wantContains: "error: sender email is required",
		},
		{
			name: "new sender linked to campaign",
			args: map[string]any{"campaign_id": uuid.NewString(), "email": "ada@example.com", "name": "Ada", "daily_quota": float64(12)},
			setup: func(d toolsDeps) {
				d.senders.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(domainsender.Sender{}, domainsender.ErrNotFound)
				d.senders.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s domainsender.Sender) (domainsender.Sender, error) { return s, nil })
				d.senders.EXPECT().AddToCampaign(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantContains: `"daily_quota":12`,
		},
		{
			name: "link failure is reported",
			args: map[string]any{"campaign_id": uuid.NewString(), "email": "ada@example.com"},
			setup: func(d toolsDeps) {
				d.senders.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(domainsender.New("ada@example.com", "Ada", 5), nil)
				d.senders.EXPECT().AddToCampaign(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("fk violation"))
			},
			wantContains: "error: add sender to campaign",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs, d := newToolsDeps(t)
			tt.setup(d)

			h := registerSenderHandler(NewSessionRegistry(), svcs.senders, svcs.campaigns)
			res, err := h(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			assert.Contains(t, resultText(res), tt.wantContains)
		})
	}
}

// ── listAssignedLeadsHandler ──────────────────────────────────────────────────

func TestListAssignedLeadsHandler(t *testing.T) {
	svcs, d := newToolsDeps(t)
	campaignID, senderID := uuid.New(), uuid.New()
	l := lead.New(campaignID, uuid.New())

	d.leads.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f lead.ListFilters) ([]lead.CampaignLead, error) {
			assert.Equal(t, campaignID, f.CampaignID)
			require.NotNil(t, f.Status)
			assert.Equal(t, lead.StatusAssigned, *f.Status)
			require.NotNil(t, f.SenderID)
			assert.Equal(t, senderID, *f.SenderID)
			assert.True(t, f.OldestFirst)
			return []lead.CampaignLead{l}, nil
		})

	h := listAssignedLeadsHandler(svcs.campaigns)
	res, err := h(context.Background(), makeReq(map[string]any{
		"campaign_id": campaignID.String(),
		"sender_id":   senderID.String(),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(res), l.LeadID.String())
}

func TestListAssignedLeadsHandler_EmptyOnError(t *testing.T) {
	svcs, d := newToolsDeps(t)
	d.leads.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	h := listAssignedLeadsHandler(svcs.campaigns)
	res, err := h(context.Background(), makeReq(map[string]any{
		"campaign_id": uuid.NewString(),
		"sender_id":   uuid.NewString(),
	}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(res))
}

// ── completeLeadHandler ───────────────────────────────────────────────────────

func TestCompleteLeadHandler(t *testing.T) {
	validArgs := func() map[string]any {
		return map[string]any{
			"campaign_id": uuid.NewString(),
			"lead_id":     uuid.NewString(),
			"sender_id":   uuid.NewString(),
			"status":      "CONTACTED",
			"email_sent":  true,
		}
	}

	tests := []struct {
		name         string
		mutate       func(args map[string]any)
		setup        func(d toolsDeps)
		wantContains string
	}{
		{
			name:         "invalid lead_id",
			mutate:       func(args map[string]any) { args["lead_id"] = "x" },
			setup:        func(d toolsDeps) {},
			wantContains: "error: invalid lead_id",
		},
		{
			name:         "non-terminal status",
			mutate:       func(args map[string]any) { args["status"] = "ASSIGNED" },
			setup:        func(d toolsDeps) {},
			wantContains: "error: invalid outcome status",
		},
		{
			name:   "lead not assigned to sender",
			mutate: func(args map[string]any) {},
			setup: func(d toolsDeps) {
				d.leads.EXPECT().MarkWorked(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(lead.ErrNotWorkable)
			},
			wantContains: "error: mark lead worked",
		},
		{
			name:   "recorded with quota reached",
			mutate: func(args map[string]any) {},
			setup: func(d toolsDeps) {
				d.leads.EXPECT().MarkWorked(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
					lead.Outcome{Status: lead.StatusContacted, EmailSent: true}).Return(nil)
				d.senders.EXPECT().IncrementStats(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				d.campaigns.EXPECT().IncrementStats(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				d.locker.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, _ int64, fn func(context.Context) error) error {
						return fn(ctx)
					})
				full := domainsender.New("ada@example.com", "Ada", 1)
				one := 1
				full.EmailsSentToday = &one
				d.senders.EXPECT().GetForCampaign(gomock.Any(), gomock.Any(), gomock.Any()).Return(full, nil)
			},
			wantContains: `"code":"quota_reached"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs, d := newToolsDeps(t)
			tt.setup(d)
			args := validArgs()
			tt.mutate(args)

			h := completeLeadHandler(svcs.dist)
			res, err := h(context.Background(), makeReq(args))
			require.NoError(t, err)
			assert.Contains(t, resultText(res), tt.wantContains)
		})
	}
}

// ── assignLeadsHandler ────────────────────────────────────────────────────────

func TestAssignLeadsHandler(t *testing.T) {
	t.Run("invalid lead id", func(t *testing.T) {
		svcs, _ := newToolsDeps(t)
		h := assignLeadsHandler(svcs.dist)
		res, err := h(context.Background(), makeReq(map[string]any{
			"campaign_id": uuid.NewString(),
			"lead_ids":    []any{uuid.NewString(), "bogus"},
		}))
		require.NoError(t, err)
		assert.Contains(t, resultText(res), `error: invalid lead id "bogus"`)
	})

	t.Run("no senders", func(t *testing.T) {
		svcs, d := newToolsDeps(t)
		d.senders.EXPECT().ListByCampaign(gomock.Any(), gomock.Any()).Return(nil, nil)

		h := assignLeadsHandler(svcs.dist)
		res, err := h(context.Background(), makeReq(map[string]any{
			"campaign_id": uuid.NewString(),
			"lead_ids":    []any{uuid.NewString()},
		}))
		require.NoError(t, err)
		assert.Contains(t, resultText(res), `"code":"no_senders"`)
	})
}

// ── senderWorkStatusHandler ───────────────────────────────────────────────────

func TestSenderWorkStatusHandler(t *testing.T) {
	svcs, d := newToolsDeps(t)
	campaignID := uuid.New()
	snd := domainsender.New("ada@example.com", "Ada", 8)

	d.senders.EXPECT().ListByCampaign(gomock.Any(), campaignID).Return([]domainsender.Sender{snd}, nil)
	d.leads.EXPECT().CountsBySender(gomock.Any(), campaignID).Return(map[uuid.UUID]lead.Counts{snd.ID: {Assigned: 2}}, nil)

	h := senderWorkStatusHandler(svcs.dist)
	res, err := h(context.Background(), makeReq(map[string]any{"campaign_id": campaignID.String()}))
	require.NoError(t, err)

	var rows []distribution.SenderWorkStatus
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 8, rows[0].AvailableCapacity)
	assert.Equal(t, 2, rows[0].ActiveLeads)
}

// ── workerPromptHandler ───────────────────────────────────────────────────────

func TestWorkerPromptHandler(t *testing.T) {
	svcs, d := newToolsDeps(t)
	c := domaincampaign.New("spring outreach")
	d.campaigns.EXPECT().GetByID(gomock.Any(), c.ID).Return(c, nil)

	var req mcpmcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"campaign_id": c.ID.String()}

	res, err := workerPromptHandler(svcs.campaigns)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(mcpmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "spring outreach")
	assert.Contains(t, text.Text, "09:00 to 17:00 UTC")
}

func TestWorkerPromptHandler_InvalidCampaign(t *testing.T) {
	svcs, _ := newToolsDeps(t)
	var req mcpmcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"campaign_id": "nope"}

	_, err := workerPromptHandler(svcs.campaigns)(context.Background(), req)
	assert.Error(t, err)
}
