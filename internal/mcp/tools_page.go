package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPageTools() {
	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List pages with their element counts and the active index"),
	), s.handleListPages)

	s.mcp.AddTool(mcp.NewTool("add_page",
		mcp.WithDescription("Append an empty page and make it active"),
	), s.handleAddPage)

	s.mcp.AddTool(mcp.NewTool("set_active_page",
		mcp.WithDescription("Switch the active page. Element tools act on the active page."),
		mcp.WithNumber("index", mcp.Description("Zero-based page index"), mcp.Required()),
	), s.handleSetActivePage)

	s.mcp.AddTool(mcp.NewTool("delete_page",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a page. The last page cannot be deleted. Requires user approval."),
		mcp.WithNumber("index", mcp.Description("Zero-based page index"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeletePage)

	s.mcp.AddTool(mcp.NewTool("clear_page",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove every element of the active page. Requires user approval."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleClearPage)
}

func (s *Server) handleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type pageSummary struct {
		Index    int  `json:"index"`
		ID       int  `json:"id"`
		Elements int  `json:"elements"`
		Active   bool `json:"active"`
	}
	state := s.editor.State()
	out := make([]pageSummary, len(state.Pages))
	for i, p := range state.Pages {
		out[i] = pageSummary{Index: i, ID: p.ID, Elements: len(p.Elements), Active: i == state.ActivePage}
	}
	return jsonResult(out)
}

func (s *Server) handleAddPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx := s.editor.AddPage(ctx)
	return textResult(fmt.Sprintf("Page %d added and active", idx)), nil
}

func (s *Server) handleSetActivePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx := int(getFloat(req.GetArguments(), "index", -1))
	if !s.editor.SetActivePage(ctx, idx) {
		return nil, fmt.Errorf("page %d does not exist", idx)
	}
	return textResult(fmt.Sprintf("Active page set to %d", idx)), nil
}

func (s *Server) handleDeletePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx := int(getFloat(req.GetArguments(), "index", -1))
	count := len(s.editor.State().Pages)
	if idx < 0 || idx >= count {
		return nil, fmt.Errorf("page %d does not exist", idx)
	}
	if count <= 1 {
		return textResult("The last page cannot be deleted"), nil
	}
	approved, err := s.approval.Request("delete_page",
		fmt.Sprintf("Delete page %d", idx), fmt.Sprintf(`{"pageIndex":%d}`, idx))
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}
	if !s.editor.DeletePage(ctx, idx) {
		return nil, fmt.Errorf("delete page %d failed", idx)
	}
	return textResult(fmt.Sprintf("Page %d deleted", idx)), nil
}

func (s *Server) handleClearPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := len(s.editor.Elements())
	if n == 0 {
		return textResult("Page is already empty"), nil
	}
	approved, err := s.approval.Request("clear_page",
		fmt.Sprintf("Remove %d element(s) from the active page", n))
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}
	s.editor.ClearPage(ctx)
	return textResult(fmt.Sprintf("Removed %d element(s)", n)), nil
}
