package mcp_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mcptransport "github.com/alanyang/leadflow/internal/transport/mcp"
)

func TestRegistry_RegisterUnregister(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	senderID, campaignID := uuid.New(), uuid.New()

	reg.Register("session-1", senderID, campaignID)
	assert.True(t, reg.IsConnected(senderID))

	gotSender, gotCampaign, ok := reg.Session("session-1")
	assert.True(t, ok)
	assert.Equal(t, senderID, gotSender)
	assert.Equal(t, campaignID, gotCampaign)

	got, ok := reg.Unregister("session-1")
	assert.True(t, ok)
	assert.Equal(t, senderID, got)
	assert.False(t, reg.IsConnected(senderID))
}

func TestRegistry_RegisterOverwritesPreviousSession(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	senderID := uuid.New()

	reg.Register("session-old", senderID, uuid.New())
	reg.Register("session-new", senderID, uuid.New())

	got, ok := reg.Unregister("session-old")
	assert.False(t, ok, "old session should not exist after re-register")
	assert.Equal(t, uuid.Nil, got)
	assert.True(t, reg.IsConnected(senderID))
}

func TestRegistry_SessionSwitchesSender(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	first, second := uuid.New(), uuid.New()

	reg.Register("session-1", first, uuid.New())
	reg.Register("session-1", second, uuid.New())

	assert.False(t, reg.IsConnected(first))
	assert.True(t, reg.IsConnected(second))
}

func TestRegistry_UnregisterNonExistentSession(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	got, ok := reg.Unregister("does-not-exist")
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, got)
}

func TestNotifySender_OfflineIsNoOp(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	err := reg.NotifySender(context.Background(), uuid.New(), map[string]string{"event": "lead_assigned"})
	assert.NoError(t, err)
}

func TestNotifySender_ConnectedWithoutServer(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	senderID := uuid.New()
	reg.Register("session-1", senderID, uuid.New())

	err := reg.NotifySender(context.Background(), senderID, map[string]string{"event": "lead_assigned"})
	assert.ErrorContains(t, err, "mcp server not initialized")
}
