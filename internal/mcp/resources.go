package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	uriEditorState = "bouncecure://editor/state"
	uriPreview     = "bouncecure://editor/preview"
	uriTemplates   = "bouncecure://templates"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		uriEditorState,
		"Editor State",
		mcp.WithResourceDescription("Pages, active page, selection and history flags"),
		mcp.WithMIMEType("application/json"),
	), s.handleStateResource)

	s.mcp.AddResource(mcp.NewResource(
		uriPreview,
		"Active Page Preview",
		mcp.WithMIMEType("text/html"),
	), s.handlePreviewResource)

	s.mcp.AddResource(mcp.NewResource(
		uriTemplates,
		"User Templates",
		mcp.WithMIMEType("application/json"),
	), s.handleTemplatesResource)
}

func (s *Server) handleStateResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.editor.State(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uriEditorState,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePreviewResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uriPreview,
			MIMEType: "text/html",
			Text:     s.editor.Render(true),
		},
	}, nil
}

func (s *Server) handleTemplatesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uriTemplates,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
