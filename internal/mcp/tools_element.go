package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"bouncecure/internal/domain"
	"bouncecure/internal/editor"
)

func (s *Server) registerElementTools() {
	// ── add_element ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_element",
		mcp.WithDescription("Add an element to the active page. Without x/y the element is placed in the first free spot."),
		mcp.WithString("type",
			mcp.Description("Element type: heading, subheading, paragraph, blockquote, button, card, frame, rectangle, circle, triangle, star, hexagon, arrow, line, image, video, audio, input, checkbox, icon, social"),
			mcp.Required(),
		),
		mcp.WithNumber("x", mcp.Description("X position (optional)")),
		mcp.WithNumber("y", mcp.Description("Y position (optional)")),
		mcp.WithString("props", mcp.Description("JSON object of element fields to override, e.g. {\"content\":\"Hi\",\"color\":\"#111\"}")),
	), s.handleAddElement)

	// ── add_layout ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_layout",
		mcp.WithDescription("Insert a predefined layout (1-6) into the active page. See list_layouts."),
		mcp.WithNumber("layoutId", mcp.Description("Layout id"), mcp.Required()),
	), s.handleAddLayout)

	s.mcp.AddTool(mcp.NewTool("list_layouts",
		mcp.WithDescription("List the predefined layouts"),
	), s.handleListLayouts)

	// ── list_elements ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_elements",
		mcp.WithDescription("List the elements of the active page, optionally filtered by type"),
		mcp.WithString("type", mcp.Description("Filter by element type (optional)")),
	), s.handleListElements)

	// ── update_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_element",
		mcp.WithDescription("Merge a JSON patch into an element as one undoable step. id and type cannot change."),
		mcp.WithString("id", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithString("patch", mcp.Description("JSON object of fields to set"), mcp.Required()),
	), s.handleUpdateElement)

	// ── move_element ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_element",
		mcp.WithDescription("Move an element to a new position"),
		mcp.WithString("id", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
	), s.handleMoveElement)

	// ── resize_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_element",
		mcp.WithDescription("Resize an element. Text elements only change height and y."),
		mcp.WithString("id", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position (optional)")),
		mcp.WithNumber("y", mcp.Description("New Y position (optional)")),
	), s.handleResizeElement)

	// ── select_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_element",
		mcp.WithDescription("Select an element; an empty id clears the selection"),
		mcp.WithString("id", mcp.Description("Element ID")),
	), s.handleSelectElement)

	// ── duplicate_element ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_element",
		mcp.WithDescription("Duplicate an element, offset by 20 units. Defaults to the selection."),
		mcp.WithString("id", mcp.Description("Element ID (optional)")),
	), s.handleDuplicateElement)

	// ── delete_element (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("delete_element",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete an element. Requires user approval. Defaults to the selection."),
		mcp.WithString("id", mcp.Description("Element ID (optional)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteElement)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last change"),
	), s.handleUndo)
	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone change"),
	), s.handleRedo)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	t := domain.ElementType(req.GetString("type", ""))
	if !t.Known() {
		return nil, fmt.Errorf("unknown element type %q", t)
	}
	patch, err := parsePatch(req.GetString("props", ""))
	if err != nil {
		return nil, err
	}
	if patch == nil {
		patch = editor.Patch{}
	}

	if _, ok := args["x"]; ok {
		patch["x"] = getFloat(args, "x", 0)
	}
	if _, ok := args["y"]; ok {
		patch["y"] = getFloat(args, "y", 0)
	}
	// a missing axis takes the auto-placed coordinate
	_, hasX := patch["x"]
	_, hasY := patch["y"]
	if !hasX || !hasY {
		w, h := editor.DefaultSize(t)
		w = getFloat(patch, "width", w)
		h = getFloat(patch, "height", h)
		x, y := s.layout.NextPosition(s.editor.Elements(), w, h)
		if !hasX {
			patch["x"] = x
		}
		if !hasY {
			patch["y"] = y
		}
	}

	el := s.editor.AddElement(ctx, t, patch)
	return jsonResult(el)
}

func (s *Server) handleAddLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int(getFloat(req.GetArguments(), "layoutId", 0))
	els := s.editor.AddLayout(ctx, id)
	return jsonResult(map[string]any{"layout": editor.LayoutByID(id).Name, "elements": els})
}

func (s *Server) handleListLayouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type layoutSummary struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Elements int    `json:"elements"`
	}
	var out []layoutSummary
	for _, l := range s.editor.Layouts() {
		out = append(out, layoutSummary{ID: l.ID, Name: l.Name, Elements: len(l.Elements)})
	}
	return jsonResult(out)
}

func (s *Server) handleListElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := domain.ElementType(req.GetString("type", ""))
	els := s.editor.Elements()
	if filter == "" {
		return jsonResult(els)
	}
	out := []domain.Element{}
	for _, el := range els {
		if el.Type == filter {
			out = append(out, el)
		}
	}
	return jsonResult(out)
}

func (s *Server) handleUpdateElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	patch, err := parsePatch(req.GetString("patch", ""))
	if err != nil {
		return nil, err
	}
	if id == "" || len(patch) == 0 {
		return nil, fmt.Errorf("id and patch are required")
	}
	if !s.editor.StyleElement(ctx, id, patch) {
		return nil, fmt.Errorf("element %s not found or patch rejected", id)
	}
	el, _ := s.editor.Element(id)
	return jsonResult(el)
}

func (s *Server) handleMoveElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id := req.GetString("id", "")
	x, y := getFloat(args, "x", 0), getFloat(args, "y", 0)
	if !s.editor.MoveElement(ctx, id, x, y) {
		return nil, fmt.Errorf("element %s not found", id)
	}
	return textResult(fmt.Sprintf("Element %s moved to (%.0f, %.0f)", id, x, y)), nil
}

func (s *Server) handleResizeElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id := req.GetString("id", "")
	el, ok := s.editor.Element(id)
	if !ok {
		return nil, fmt.Errorf("element %s not found", id)
	}
	// Resize takes screen units; scale canvas units up by the current zoom.
	zoom := s.editor.State().Zoom
	x := getFloat(args, "x", el.X) * zoom
	y := getFloat(args, "y", el.Y) * zoom
	w := getFloat(args, "width", el.Width) * zoom
	h := getFloat(args, "height", el.Height) * zoom
	if !s.editor.Resize(ctx, id, x, y, w, h) {
		return nil, fmt.Errorf("resize %s rejected", id)
	}
	el, _ = s.editor.Element(id)
	return jsonResult(el)
}

func (s *Server) handleSelectElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		s.editor.ClearSelection(ctx)
		return textResult("Selection cleared"), nil
	}
	if !s.editor.SelectElement(ctx, id) {
		return nil, fmt.Errorf("element %s not found", id)
	}
	return textResult(fmt.Sprintf("Element %s selected", id)), nil
}

// selectTarget selects id when given, falling back to the current selection.
func (s *Server) selectTarget(ctx context.Context, id string) (string, error) {
	if id != "" {
		if !s.editor.SelectElement(ctx, id) {
			return "", fmt.Errorf("element %s not found", id)
		}
		return id, nil
	}
	if sel := s.editor.State().SelectedElement; sel != "" {
		return sel, nil
	}
	return "", fmt.Errorf("no id provided and nothing selected")
}

func (s *Server) handleDuplicateElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := s.selectTarget(ctx, req.GetString("id", "")); err != nil {
		return nil, err
	}
	dup, ok := s.editor.DuplicateElement(ctx)
	if !ok {
		return nil, fmt.Errorf("duplicate failed")
	}
	return jsonResult(dup)
}

func (s *Server) handleDeleteElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.selectTarget(ctx, req.GetString("id", ""))
	if err != nil {
		return nil, err
	}
	el, _ := s.editor.Element(id)

	meta := fmt.Sprintf(`{"elementIds":["%s"]}`, id)
	approved, err := s.approval.Request("delete_element",
		fmt.Sprintf("Delete %s element %s", el.Type, id), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	// The selection may have moved while waiting for approval.
	if _, err := s.selectTarget(ctx, id); err != nil {
		return nil, err
	}
	if !s.editor.DeleteElement(ctx) {
		return nil, fmt.Errorf("delete %s failed", id)
	}
	return textResult(fmt.Sprintf("Element %s deleted", id)), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.Undo(ctx) {
		return textResult("Nothing to undo"), nil
	}
	return textResult("Undone"), nil
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.Redo(ctx) {
		return textResult("Nothing to redo"), nil
	}
	return textResult("Redone"), nil
}
