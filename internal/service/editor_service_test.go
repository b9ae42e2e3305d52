package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/domain"
	"bouncecure/internal/editor"
	"bouncecure/internal/service"
	"bouncecure/internal/storage"
)

func TestEditorService_MutationsEmitChanged(t *testing.T) {
	svc, _, emitter := newTestEditor(t)
	ctx := context.Background()

	el := svc.AddElement(ctx, domain.ElementHeading, nil)
	assert.Equal(t, "el-1", el.ID)
	assert.Equal(t, 50.0, el.X)

	require.True(t, svc.SelectElement(ctx, el.ID))
	assert.False(t, svc.SelectElement(ctx, "missing"))

	changed := emitter.Named(service.EventEditorChanged)
	require.Len(t, changed, 2)
	state, ok := changed[1].Data.(service.EditorState)
	require.True(t, ok)
	assert.Equal(t, el.ID, state.SelectedElement)
	assert.True(t, state.Dirty)
}

func TestEditorService_DragThenUndo(t *testing.T) {
	svc, _, _ := newTestEditor(t)
	ctx := context.Background()
	el := svc.AddElement(ctx, domain.ElementButton, editor.Patch{"x": 50.0, "y": 50.0})

	require.True(t, svc.BeginDrag(ctx, el.ID))
	svc.DragTo(ctx, 50, 20)
	require.True(t, svc.EndDrag(ctx, 100, 40))

	moved, _ := svc.Element(el.ID)
	assert.Equal(t, 150.0, moved.X)
	assert.Equal(t, 90.0, moved.Y)

	require.True(t, svc.Undo(ctx))
	back, _ := svc.Element(el.ID)
	assert.Equal(t, 50.0, back.X)
	assert.Equal(t, 50.0, back.Y)

	require.True(t, svc.Undo(ctx), "the add itself is undoable")
	assert.Empty(t, svc.Elements())
	assert.False(t, svc.Undo(ctx))
}

func TestEditorService_SaveAndMount(t *testing.T) {
	svc, store, emitter := newTestEditor(t)
	ctx := context.Background()

	svc.AddElement(ctx, domain.ElementParagraph, editor.Patch{"content": "Hello"})
	svc.AddPage(ctx)
	svc.SetBackground(ctx, "#fafafa")
	require.NoError(t, svc.Save(ctx))
	assert.False(t, svc.Dirty())
	assert.Len(t, emitter.Named(service.EventEditorSaved), 1)

	raw, err := store.Load(ctx, domain.KeyCanvasData)
	require.NoError(t, err)
	var data domain.CanvasData
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Len(t, data.Pages, 2)
	assert.Equal(t, 1, data.ActivePage)
	assert.Equal(t, "#fafafa", data.CanvasBackgroundColor)

	// A second session over the same store resumes where the first left off.
	other := service.NewEditorService(store, service.NewTemplateService(store, emitter), emitter, service.EditorOptions{PersistHistory: true})
	require.NoError(t, other.Mount(ctx))
	state := other.State()
	assert.Len(t, state.Pages, 2)
	assert.Equal(t, 1, state.ActivePage)
	assert.Equal(t, "#fafafa", state.Background)
	assert.True(t, state.CanUndo, "history is restored")

	require.True(t, other.SetActivePage(ctx, 0))
	els := other.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "Hello", els[0].Content)
}

func TestEditorService_MountEmptyStoreKeepsFreshSession(t *testing.T) {
	svc, _, _ := newTestEditor(t)
	require.NoError(t, svc.Mount(context.Background()))
	state := svc.State()
	assert.Len(t, state.Pages, 1)
	assert.Empty(t, state.Pages[0].Elements)
}

func TestEditorService_SaveFailureAlerts(t *testing.T) {
	svc, store, emitter := newTestEditor(t)
	ctx := context.Background()
	svc.AddElement(ctx, domain.ElementHeading, nil)

	store.FailSave = errors.New("quota exceeded")
	require.Error(t, svc.Save(ctx))
	assert.True(t, svc.Dirty())
	require.Len(t, emitter.Named(service.EventEditorAlert), 1)

	// The session stays usable.
	svc.AddElement(ctx, domain.ElementParagraph, nil)
	assert.Len(t, svc.Elements(), 2)
}

func TestEditorService_SaveAsTemplateEmptyName(t *testing.T) {
	svc, store, emitter := newTestEditor(t)
	ctx := context.Background()
	svc.AddElement(ctx, domain.ElementHeading, nil)
	before := svc.Elements()

	_, err := svc.SaveAsTemplate(ctx, "   ", "")
	require.ErrorIs(t, err, editor.ErrTemplateNameRequired)

	assert.Equal(t, 0, store.Len(), "store is untouched")
	assert.Equal(t, before, svc.Elements(), "page is untouched")
	alerts := emitter.Named(service.EventEditorAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, "please enter a template name", alerts[0].Data.(service.Alert).Message)
}

func TestEditorService_SaveAsTemplateEmptyPage(t *testing.T) {
	svc, store, _ := newTestEditor(t)
	_, err := svc.SaveAsTemplate(context.Background(), "Promo", "")
	require.ErrorIs(t, err, editor.ErrEmptyPage)
	assert.Equal(t, 0, store.Len())
}

func TestEditorService_TemplateRoundTrip(t *testing.T) {
	svc, _, emitter := newTestEditor(t)
	ctx := context.Background()
	svc.AddElement(ctx, domain.ElementHeading, editor.Patch{"content": "Sale", "x": 10.0, "y": 20.0})
	svc.AddElement(ctx, domain.ElementButton, editor.Patch{"link": "https://example.com"})

	tpl, err := svc.SaveAsTemplate(ctx, "Promo", "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTemplateCategory, tpl.Category)
	assert.Len(t, emitter.Named(service.EventTemplatesChanged), 1)

	require.True(t, svc.ClearPage(ctx))
	assert.Empty(t, svc.Elements())

	skipped, err := svc.LoadTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Zero(t, skipped)

	els := svc.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, domain.ElementHeading, els[0].Type)
	assert.Equal(t, "Sale", els[0].Content)
	assert.Equal(t, 10.0, els[0].X)
	assert.Equal(t, domain.ElementButton, els[1].Type)

	require.True(t, svc.Undo(ctx), "applying a template is undoable")
	assert.Empty(t, svc.Elements())
}

func TestEditorService_LoadTemplateMissing(t *testing.T) {
	svc, _, emitter := newTestEditor(t)
	_, err := svc.LoadTemplate(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, emitter.Named(service.EventEditorAlert), 1)
}

func TestEditorService_ToolboxStyling(t *testing.T) {
	svc, _, _ := newTestEditor(t)
	ctx := context.Background()

	cardID := svc.ApplyColor(ctx, "#ff0000")
	require.NotEmpty(t, cardID)
	card, ok := svc.Element(cardID)
	require.True(t, ok)
	assert.Equal(t, domain.ElementCard, card.Type)
	assert.Equal(t, "#ff0000", card.BackgroundColor)

	require.True(t, svc.SelectElement(ctx, cardID))
	assert.Equal(t, cardID, svc.ApplyGradient(ctx, "#000", "#fff", 90))
	card, _ = svc.Element(cardID)
	assert.Equal(t, "linear-gradient(90deg, #000, #fff)", card.BackgroundImage)

	assert.Empty(t, svc.ApplyPattern(ctx, "plaid"))
	assert.Len(t, svc.Elements(), 1)
}

func TestEditorService_Render(t *testing.T) {
	svc, _, _ := newTestEditor(t)
	ctx := context.Background()
	el := svc.AddElement(ctx, domain.ElementParagraph, editor.Patch{"content": "Body"})
	svc.SelectElement(ctx, el.ID)

	edit := svc.Render(false)
	assert.Contains(t, edit, `data-mode="edit"`)
	assert.Contains(t, edit, "selected")

	preview := svc.Render(true)
	assert.Contains(t, preview, `data-mode="preview"`)
	assert.NotContains(t, preview, "selected")
	assert.Contains(t, preview, "Body")
}

func TestEditorService_AutosaveInvalidSchedule(t *testing.T) {
	svc, _, _ := newTestEditor(t)
	require.Error(t, svc.StartAutosave(context.Background(), "not a schedule"))
	require.NoError(t, svc.StartAutosave(context.Background(), ""))
	svc.Stop()
}

func TestEditorService_WatchStoreIgnoresNonWatchers(t *testing.T) {
	svc, _, _ := newTestEditor(t)
	require.NoError(t, svc.WatchStore(context.Background()))
	svc.Stop()
}

func TestEditorService_ReloadSkipsDirtyAndOwnSave(t *testing.T) {
	store := storage.NewMemoryStore()
	emitter := &service.MockEmitter{}
	svc := service.NewEditorService(store, service.NewTemplateService(store, emitter), emitter, service.EditorOptions{})
	ctx := context.Background()

	svc.AddElement(ctx, domain.ElementHeading, nil)
	assert.False(t, svc.Reload(ctx), "unsaved edits are kept")
	require.NoError(t, svc.Save(ctx))
	assert.False(t, svc.Reload(ctx), "this session's own save is not an external change")
	assert.Empty(t, emitter.Named(service.EventExternalChange))

	// another process rewrites the canvas
	data, err := json.Marshal(domain.CanvasData{
		Pages:                 []domain.Page{{ID: 1}, {ID: 2}},
		CanvasBackgroundColor: "#101010",
	})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, domain.KeyCanvasData, data))

	assert.True(t, svc.Reload(ctx))
	assert.Len(t, emitter.Named(service.EventExternalChange), 1)
	state := svc.State()
	assert.Len(t, state.Pages, 2)
	assert.Equal(t, "#101010", state.Background)
	assert.False(t, state.Dirty)
}

// editDuringLoadStore runs onLoad the first time canvasData is read, to
// land a local edit between Reload's dirty check and the swap.
type editDuringLoadStore struct {
	*storage.MemoryStore
	onLoad func()
}

func (s *editDuringLoadStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == domain.KeyCanvasData && s.onLoad != nil {
		fn := s.onLoad
		s.onLoad = nil
		fn()
	}
	return s.MemoryStore.Load(ctx, key)
}

func TestEditorService_ReloadKeepsEditMadeDuringLoad(t *testing.T) {
	store := &editDuringLoadStore{MemoryStore: storage.NewMemoryStore()}
	emitter := &service.MockEmitter{}
	svc := service.NewEditorService(store, service.NewTemplateService(store, emitter), emitter, service.EditorOptions{})
	ctx := context.Background()

	data, err := json.Marshal(domain.CanvasData{Pages: []domain.Page{{ID: 1}, {ID: 2}}})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, domain.KeyCanvasData, data))

	store.onLoad = func() { svc.AddElement(ctx, domain.ElementButton, nil) }
	assert.False(t, svc.Reload(ctx))
	assert.Len(t, svc.Elements(), 1, "the concurrent edit survives")
	assert.True(t, svc.Dirty())
	assert.Empty(t, emitter.Named(service.EventExternalChange))
}
