package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bouncecure/internal/service"
)

// Server is the MCP server for the campaign editor.
// It exposes tools, resources, and prompts so AI agents can build emails
// on the canvas.
type Server struct {
	mcp      *server.MCPServer
	emitter  service.EventEmitter
	approval *ApprovalQueue
	layout   *LayoutEngine

	editor    *service.EditorService
	templates *service.TemplateService
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Name      string
	Version   string
	Emitter   service.EventEmitter
	Editor    *service.EditorService
	Templates *service.TemplateService

	// AutoApprove skips the approval round trip for destructive tools.
	// Set in standalone mode where no frontend can answer.
	AutoApprove bool
}

// New creates and configures a new MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	approval := NewApprovalQueue(ctx, deps.Emitter)
	approval.autoApprove = deps.AutoApprove
	s := &Server{
		emitter:   deps.Emitter,
		approval:  approval,
		layout:    NewLayoutEngine(deps.Editor.State().Width),
		editor:    deps.Editor,
		templates: deps.Templates,
	}

	name, version := deps.Name, deps.Version
	if name == "" {
		name = "bouncecure-editor"
	}
	if version == "" {
		version = "1.0.0"
	}
	s.mcp = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerElementTools()
	s.registerPageTools()
	s.registerStyleTools()
	s.registerTemplateTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// MCPServer exposes the underlying server for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
