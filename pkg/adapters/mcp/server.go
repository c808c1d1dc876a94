// Package mcp exposes the oracle as a Model Context Protocol server.
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	oracle "github.com/rio-ARC/Oracle-of-Delphi-Chatbot"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// Engine is the slice of the oracle the MCP server needs.
type Engine interface {
	Consult(ctx context.Context, sessionID, message string) (string, ritual.Snapshot, error)
	Snapshot(sessionID string) (ritual.Snapshot, error)
}

// ConsultResponse is the structured result of the consult_oracle tool.
type ConsultResponse struct {
	Response    string          `json:"response" jsonschema_description:"The oracle's prophecy"`
	SessionID   string          `json:"session_id" jsonschema_description:"Session the consultation belongs to"`
	RitualState ritual.Snapshot `json:"ritual_state" jsonschema_description:"State of the ritual machine after the consultation"`
}

// consultArgs binds the consult_oracle tool arguments.
type consultArgs struct {
	Message   string `mapstructure:"message"`
	SessionID string `mapstructure:"session_id"`
}

// stateArgs binds the ritual_state tool arguments.
type stateArgs struct {
	SessionID string `mapstructure:"session_id"`
}

// Server wraps the oracle engine as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("oracle-of-delphi", oracle.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio runs the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	consultTool := mcp.NewTool("consult_oracle",
		mcp.WithDescription("Consult the Oracle of Delphi. The answer is paced by the ritual's contemplation window."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The question for the oracle")),
		mcp.WithString("session_id", mcp.Description("Session scoping the consultation (optional)")),
		mcp.WithOutputSchema[ConsultResponse](),
	)
	s.mcpServer.AddTool(consultTool, mcp.NewStructuredToolHandler(s.handleConsult))

	stateTool := mcp.NewTool("ritual_state",
		mcp.WithDescription("Inspect the ritual state machine of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to inspect")),
		mcp.WithOutputSchema[ritual.Snapshot](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleState))
}

func (s *Server) handleConsult(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (ConsultResponse, error) {
	var args consultArgs
	if err := mapstructure.Decode(raw, &args); err != nil {
		return ConsultResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Message == "" {
		return ConsultResponse{}, fmt.Errorf("message must not be empty")
	}
	if args.SessionID == "" {
		args.SessionID = oracle.DefaultSessionID
	}

	response, snap, err := s.engine.Consult(ctx, args.SessionID, args.Message)
	if err != nil {
		return ConsultResponse{}, fmt.Errorf("consultation failed: %w", err)
	}
	return ConsultResponse{
		Response:    response,
		SessionID:   args.SessionID,
		RitualState: snap,
	}, nil
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (ritual.Snapshot, error) {
	var args stateArgs
	if err := mapstructure.Decode(raw, &args); err != nil {
		return ritual.Snapshot{}, fmt.Errorf("invalid arguments: %w", err)
	}
	snap, err := s.engine.Snapshot(args.SessionID)
	if err != nil {
		return ritual.Snapshot{}, fmt.Errorf("session %q: %w", args.SessionID, err)
	}
	return snap, nil
}
