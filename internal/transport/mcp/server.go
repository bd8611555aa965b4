package mcp

import (
	"context"
	"log/slog"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
	"github.com/alanyang/leadflow/internal/service/distribution"
	sendersvc "github.com/alanyang/leadflow/internal/service/sender"
)

// Server wraps the mcp-go MCPServer and its StreamableHTTPServer. Tools live
// in tools.go, prompts in prompts.go and session state in registry.go.
type Server struct {
	httpSrv *mcpserver.StreamableHTTPServer
	reg     *SessionRegistry
}

// New creates the MCP transport server. reg is built before the distribution
// service, which uses it as its notifier.
func New(
	reg *SessionRegistry,
	distSvc *distribution.Service,
	senderSvc *sendersvc.Service,
	campaignSvc *campaignsvc.Service,
) *Server {
	s := &Server{reg: reg}

	hooks := &mcpserver.Hooks{}
	hooks.OnUnregisterSession = append(hooks.OnUnregisterSession, s.onSessionClose)

	mcpSrv := mcpserver.NewMCPServer(
		"leadflow",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithHooks(hooks),
	)

	reg.SetMCPServer(mcpSrv)

	RegisterTools(mcpSrv, reg, distSvc, senderSvc, campaignSvc)
	RegisterPrompts(mcpSrv, campaignSvc)

	s.httpSrv = mcpserver.NewStreamableHTTPServer(mcpSrv)
	return s
}

// Handler returns an http.Handler that serves the MCP endpoint.
func (s *Server) Handler() http.Handler {
	return s.httpSrv
}

func (s *Server) Registry() *SessionRegistry {
	return s.reg
}

func (s *Server) onSessionClose(ctx context.Context, session mcpserver.ClientSession) {
	senderID, ok := s.reg.Unregister(session.SessionID())
	if !ok {
		return
	}
	// Leads stay ASSIGNED to the sender; its next session picks them up
	// through list_assigned_leads.
	slog.InfoContext(ctx, "mcp: worker session closed", "session_id", session.SessionID(), "sender_id", senderID)
}
