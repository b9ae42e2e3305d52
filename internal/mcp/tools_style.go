package mcpserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"bouncecure/internal/editor"
)

func (s *Server) registerStyleTools() {
	s.mcp.AddTool(mcp.NewTool("apply_color",
		mcp.WithDescription("Set a solid background on the selected element, or add a colored card when nothing is selected"),
		mcp.WithString("color", mcp.Description("CSS color, e.g. #3b82f6"), mcp.Required()),
	), s.handleApplyColor)

	s.mcp.AddTool(mcp.NewTool("apply_gradient",
		mcp.WithDescription("Set a linear gradient background on the selection, or add a card"),
		mcp.WithString("from", mcp.Description("Start color"), mcp.Required()),
		mcp.WithString("to", mcp.Description("End color"), mcp.Required()),
		mcp.WithNumber("angle", mcp.Description("Angle in degrees (default 90)")),
	), s.handleApplyGradient)

	s.mcp.AddTool(mcp.NewTool("apply_pattern",
		mcp.WithDescription("Set a named pattern background on the selection, or add a card"),
		mcp.WithString("name",
			mcp.Description("Pattern name"),
			mcp.Enum(patternNames()...),
			mcp.Required(),
		),
	), s.handleApplyPattern)

	s.mcp.AddTool(mcp.NewTool("set_canvas_background",
		mcp.WithDescription("Change the canvas background color"),
		mcp.WithString("color", mcp.Description("CSS color"), mcp.Required()),
	), s.handleSetBackground)

	s.mcp.AddTool(mcp.NewTool("set_zoom",
		mcp.WithDescription("Set the canvas zoom, clamped to 0.25-3"),
		mcp.WithNumber("zoom", mcp.Description("Zoom factor"), mcp.Required()),
	), s.handleSetZoom)
}

func patternNames() []string {
	names := make([]string, 0, len(editor.Patterns))
	for n := range editor.Patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Server) styledResult(id string) (*mcp.CallToolResult, error) {
	if id == "" {
		return nil, fmt.Errorf("style not applied")
	}
	el, _ := s.editor.Element(id)
	return jsonResult(el)
}

func (s *Server) handleApplyColor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	color := req.GetString("color", "")
	if color == "" {
		return nil, fmt.Errorf("color is required")
	}
	return s.styledResult(s.editor.ApplyColor(ctx, color))
}

func (s *Server) handleApplyGradient(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, to := req.GetString("from", ""), req.GetString("to", "")
	if from == "" || to == "" {
		return nil, fmt.Errorf("from and to are required")
	}
	angle := getFloat(req.GetArguments(), "angle", 90)
	return s.styledResult(s.editor.ApplyGradient(ctx, from, to, angle))
}

func (s *Server) handleApplyPattern(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	id := s.editor.ApplyPattern(ctx, name)
	if id == "" {
		return nil, fmt.Errorf("unknown pattern %q", name)
	}
	return s.styledResult(id)
}

func (s *Server) handleSetBackground(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	color := req.GetString("color", "")
	if color == "" {
		return nil, fmt.Errorf("color is required")
	}
	s.editor.SetBackground(ctx, color)
	return textResult("Canvas background set to " + color), nil
}

func (s *Server) handleSetZoom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	z := s.editor.SetZoom(ctx, getFloat(req.GetArguments(), "zoom", 1))
	return textResult(fmt.Sprintf("Zoom set to %g", z)), nil
}
