package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// sessionEntry tracks which sender a connected worker drives.
type sessionEntry struct {
	senderID   uuid.UUID
	campaignID uuid.UUID
}

// SessionRegistry is the in-memory registry of active worker sessions. It
// implements port/notifier.SenderNotifier.
type SessionRegistry struct {
	mu         sync.RWMutex
	bySessions map[string]*sessionEntry // sessionID → entry
	bySender   map[uuid.UUID]string     // senderID → sessionID

	// mcpSrv is set after the MCP server is constructed.
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

// NewSessionRegistry creates a registry without an MCP server reference.
// Call SetMCPServer once the mcp-go server is constructed.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		bySessions: make(map[string]*sessionEntry),
		bySender:   make(map[uuid.UUID]string),
	}
}

func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Register maps a session to a sender. A sender has at most one live session;
// registering again moves it to the new one.
func (r *SessionRegistry) Register(sessionID string, senderID, campaignID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if oldSession, ok := r.bySender[senderID]; ok {
		delete(r.bySessions, oldSession)
	}
	if old, ok := r.bySessions[sessionID]; ok && old.senderID != senderID {
		delete(r.bySender, old.senderID)
	}

	r.bySessions[sessionID] = &sessionEntry{
		senderID:   senderID,
		campaignID: campaignID,
	}
	r.bySender[senderID] = sessionID
}

// Unregister removes a session when it closes. Returns the senderID it mapped to.
func (r *SessionRegistry) Unregister(sessionID string) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.bySessions[sessionID]
	if !ok {
		return uuid.Nil, false
	}

	delete(r.bySessions, sessionID)
	delete(r.bySender, entry.senderID)
	return entry.senderID, true
}

// NotifySender pushes event to the sender's session. Offline senders are a no-op.
func (r *SessionRegistry) NotifySender(_ context.Context, senderID uuid.UUID, event any) error {
	r.mu.RLock()
	sessionID, ok := r.bySender[senderID]
	r.mu.RUnlock()

	if !ok {
		return nil
	}

	r.mcpMu.RLock()
	srv := r.mcpSrv
	r.mcpMu.RUnlock()

	if srv == nil {
		return fmt.Errorf("mcp server not initialized")
	}

	params, err := toParams(event)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	return srv.SendNotificationToSpecificClient(sessionID, "notifications/message", params)
}

func (r *SessionRegistry) IsConnected(senderID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySender[senderID]
	return ok
}

// Session returns the sender and campaign a session registered for.
func (r *SessionRegistry) Session(sessionID string) (senderID, campaignID uuid.UUID, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.bySessions[sessionID]
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return entry.senderID, entry.campaignID, true
}

func toParams(event any) (map[string]any, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": event}, nil
	}
	return params, nil
}
