package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/domain"
	"bouncecure/internal/service"
	"bouncecure/internal/storage"
)

func newTestServer(t *testing.T, autoApprove bool) (*Server, *service.MockEmitter) {
	t.Helper()
	store := storage.NewMemoryStore()
	emitter := &service.MockEmitter{}
	templates := service.NewTemplateService(store, emitter)
	n := 0
	ed := service.NewEditorService(store, templates, emitter, service.EditorOptions{
		NewID: func() string {
			n++
			return fmt.Sprintf("el-%d", n)
		},
	})
	s := New(context.Background(), Deps{
		Emitter:     emitter,
		Editor:      ed,
		Templates:   templates,
		AutoApprove: autoApprove,
	})
	return s, emitter
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestAddElement_AutoPlacement(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	res, err := s.handleAddElement(ctx, call(map[string]any{"type": "rectangle", "props": `{"width":600,"height":120}`}))
	require.NoError(t, err)
	var first domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &first))
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, 0.0, first.Y)
	assert.Equal(t, 600.0, first.Width)

	res, err = s.handleAddElement(ctx, call(map[string]any{"type": "heading"}))
	require.NoError(t, err)
	var second domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &second))
	assert.GreaterOrEqual(t, second.Y, 120+Padding, "placed below the band")
}

func TestAddElement_ExplicitPositionAndUnknownType(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	res, err := s.handleAddElement(ctx, call(map[string]any{"type": "button", "x": 40.0, "y": 70.0}))
	require.NoError(t, err)
	var el domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &el))
	assert.Equal(t, 40.0, el.X)
	assert.Equal(t, 70.0, el.Y)
	assert.Equal(t, "Click Me", el.Content)

	_, err = s.handleAddElement(ctx, call(map[string]any{"type": "marquee"}))
	assert.Error(t, err)
}

func TestAddElement_SingleAxisKeepsAutoPlacement(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	_, err := s.handleAddElement(ctx, call(map[string]any{"type": "rectangle", "props": `{"width":600,"height":120}`}))
	require.NoError(t, err)

	res, err := s.handleAddElement(ctx, call(map[string]any{"type": "heading", "x": 300.0}))
	require.NoError(t, err)
	var el domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &el))
	assert.Equal(t, 300.0, el.X)
	assert.GreaterOrEqual(t, el.Y, 120+Padding, "y is auto-placed, not 0")

	res, err = s.handleAddElement(ctx, call(map[string]any{"type": "heading", "props": `{"y":500}`}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &el))
	assert.Equal(t, 500.0, el.Y)
}

func TestAddLayoutAndUndo(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	_, err := s.handleAddLayout(ctx, call(map[string]any{"layoutId": 1.0}))
	require.NoError(t, err)
	assert.Len(t, s.editor.Elements(), 7)

	res, err := s.handleUndo(ctx, call(nil))
	require.NoError(t, err)
	assert.Equal(t, "Undone", resultText(t, res))
	assert.Empty(t, s.editor.Elements())

	res, err = s.handleUndo(ctx, call(nil))
	require.NoError(t, err)
	assert.Equal(t, "Nothing to undo", resultText(t, res))
}

func TestUpdateElement_RejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()
	el := s.editor.AddElement(ctx, domain.ElementHeading, nil)

	_, err := s.handleUpdateElement(ctx, call(map[string]any{"id": el.ID, "patch": "{not json"}))
	assert.Error(t, err)
	_, err = s.handleUpdateElement(ctx, call(map[string]any{"id": "missing", "patch": `{"content":"x"}`}))
	assert.Error(t, err)

	res, err := s.handleUpdateElement(ctx, call(map[string]any{"id": el.ID, "patch": `{"content":"Big Sale","id":"hijack"}`}))
	require.NoError(t, err)
	var got domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, el.ID, got.ID)
	assert.Equal(t, "Big Sale", got.Content)
}

func TestDeleteElement_AutoApproved(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()
	el := s.editor.AddElement(ctx, domain.ElementImage, nil)

	res, err := s.handleDeleteElement(ctx, call(map[string]any{"id": el.ID}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "deleted")
	assert.Empty(t, s.editor.Elements())
}

func TestDeleteElement_WaitsForApproval(t *testing.T) {
	s, emitter := newTestServer(t, false)
	ctx := context.Background()
	el := s.editor.AddElement(ctx, domain.ElementImage, nil)

	done := make(chan string, 1)
	go func() {
		res, _ := s.handleDeleteElement(ctx, call(map[string]any{"id": el.ID}))
		done <- resultText(t, res)
	}()

	var pending PendingAction
	require.Eventually(t, func() bool {
		evs := emitter.Named(EventApprovalRequired)
		if len(evs) == 0 {
			return false
		}
		pending = evs[0].Data.(PendingAction)
		return true
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "delete_element", pending.Tool)

	s.Reject(pending.ID)
	select {
	case text := <-done:
		assert.Equal(t, "Action rejected by user", text)
	case <-time.After(time.Second):
		t.Fatal("delete did not return after rejection")
	}
	assert.Len(t, s.editor.Elements(), 1)
}

func TestPageTools(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	res, err := s.handleDeletePage(ctx, call(map[string]any{"index": 0.0}))
	require.NoError(t, err)
	assert.Equal(t, "The last page cannot be deleted", resultText(t, res))

	_, err = s.handleAddPage(ctx, call(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, s.editor.State().ActivePage)

	_, err = s.handleSetActivePage(ctx, call(map[string]any{"index": 5.0}))
	assert.Error(t, err)

	_, err = s.handleDeletePage(ctx, call(map[string]any{"index": 1.0}))
	require.NoError(t, err)
	state := s.editor.State()
	assert.Len(t, state.Pages, 1)
	assert.Equal(t, 0, state.ActivePage)
}

func TestClearPage(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	res, err := s.handleClearPage(ctx, call(nil))
	require.NoError(t, err)
	assert.Equal(t, "Page is already empty", resultText(t, res))

	s.editor.AddLayout(ctx, 2)
	_, err = s.handleClearPage(ctx, call(nil))
	require.NoError(t, err)
	assert.Empty(t, s.editor.Elements())
}

func TestStyleTools(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()

	res, err := s.handleApplyColor(ctx, call(map[string]any{"color": "#10b981"}))
	require.NoError(t, err)
	var card domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &card))
	assert.Equal(t, domain.ElementCard, card.Type)

	_, err = s.handleApplyPattern(ctx, call(map[string]any{"name": "plaid"}))
	assert.Error(t, err)

	res, err = s.handleApplyPattern(ctx, call(map[string]any{"name": "dots"}))
	require.NoError(t, err)
	var styled domain.Element
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &styled))
	assert.Equal(t, card.ID, styled.ID, "the new card stays selected")
	assert.NotEmpty(t, styled.BackgroundImage)

	res, err = s.handleSetZoom(ctx, call(map[string]any{"zoom": 10.0}))
	require.NoError(t, err)
	assert.Equal(t, "Zoom set to 3", resultText(t, res))
}

func TestTemplateTools(t *testing.T) {
	s, emitter := newTestServer(t, true)
	ctx := context.Background()

	_, err := s.handleSaveTemplate(ctx, call(map[string]any{"name": ""}))
	require.Error(t, err)
	assert.Len(t, emitter.Named(service.EventEditorAlert), 1)

	s.editor.AddLayout(ctx, 4)
	res, err := s.handleSaveTemplate(ctx, call(map[string]any{"name": "Hero", "category": "Promo"}))
	require.NoError(t, err)
	var saved struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &saved))

	res, err = s.handleListTemplates(ctx, call(map[string]any{"category": "promo"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Hero")

	count := len(s.editor.Elements())
	s.editor.ClearPage(ctx)
	_, err = s.handleLoadTemplate(ctx, call(map[string]any{"id": saved.ID}))
	require.NoError(t, err)
	assert.Len(t, s.editor.Elements(), count)

	_, err = s.handleDeleteTemplate(ctx, call(map[string]any{"id": saved.ID}))
	require.NoError(t, err)
	list, err := s.templates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRenderPreviewAndStateResource(t *testing.T) {
	s, _ := newTestServer(t, true)
	ctx := context.Background()
	s.editor.AddElement(ctx, domain.ElementHeading, nil)

	res, err := s.handleRenderPreview(ctx, call(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `data-mode="preview"`)

	contents, err := s.handleStateResource(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcp.TextResourceContents).Text
	assert.Contains(t, text, `"activePage": 0`)
	assert.Contains(t, text, "Heading")
}
