package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"bouncecure/internal/domain"
)

func (s *Server) registerTemplateTools() {
	s.mcp.AddTool(mcp.NewTool("save",
		mcp.WithDescription("Persist the editor session"),
	), s.handleSave)

	s.mcp.AddTool(mcp.NewTool("save_template",
		mcp.WithDescription("Save the active page as a reusable template"),
		mcp.WithString("name", mcp.Description("Template name"), mcp.Required()),
		mcp.WithString("category", mcp.Description("Category (default Custom)")),
	), s.handleSaveTemplate)

	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List user-created templates, optionally filtered by category"),
		mcp.WithString("category", mcp.Description("Category filter (optional)")),
	), s.handleListTemplates)

	s.mcp.AddTool(mcp.NewTool("load_template",
		mcp.WithDescription("Replace the active page with a template. Undoable."),
		mcp.WithString("id", mcp.Description("Template ID"), mcp.Required()),
	), s.handleLoadTemplate)

	s.mcp.AddTool(mcp.NewTool("delete_template",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a user template. Requires user approval."),
		mcp.WithString("id", mcp.Description("Template ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteTemplate)

	s.mcp.AddTool(mcp.NewTool("render_preview",
		mcp.WithDescription("Render the active page as HTML"),
		mcp.WithBoolean("preview", mcp.Description("Paint in zIndex order without selection handles (default true)")),
	), s.handleRenderPreview)
}

func (s *Server) handleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.editor.Save(ctx); err != nil {
		return nil, err
	}
	return textResult("Saved"), nil
}

func (s *Server) handleSaveTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.editor.SaveAsTemplate(ctx, req.GetString("name", ""), req.GetString("category", ""))
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{"id": t.ID, "name": t.Name, "category": t.Category, "items": len(t.Content)})
}

func (s *Server) handleListTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		list []domain.Template
		err  error
	)
	if cat := req.GetString("category", ""); cat != "" {
		list, err = s.templates.ListByCategory(ctx, cat)
	} else {
		list, err = s.templates.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	type templateSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Items    int    `json:"items"`
	}
	out := make([]templateSummary, len(list))
	for i, t := range list {
		out[i] = templateSummary{ID: t.ID, Name: t.Name, Category: t.Category, Items: len(t.Content)}
	}
	return jsonResult(out)
}

func (s *Server) handleLoadTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	skipped, err := s.editor.LoadTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Template %s loaded (%d element(s), %d skipped)", id, len(s.editor.Elements()), skipped)), nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	t, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	approved, err := s.approval.Request("delete_template", fmt.Sprintf("Delete template %q", t.Name))
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}
	if err := s.templates.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete template: %w", err)
	}
	return textResult(fmt.Sprintf("Template %s deleted", id)), nil
}

func (s *Server) handleRenderPreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	preview := getBool(req.GetArguments(), "preview", true)
	return textResult(s.editor.Render(preview)), nil
}
