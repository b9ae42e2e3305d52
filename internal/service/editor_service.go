package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"bouncecure/internal/domain"
	"bouncecure/internal/editor"
	"bouncecure/internal/render"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: one editing session over a Template Store
// ─────────────────────────────────────────────────────────────

// EditorOptions configures an EditorService.
type EditorOptions struct {
	HistoryLimit    int
	CanvasWidth     float64
	CanvasHeight    float64
	BackgroundColor string
	PersistHistory  bool

	// NewID and Random are passed to the controller; nil selects defaults.
	NewID  func() string
	Random func() float64
}

// EditorService serializes access to a single editor session and persists
// it. Every mutation emits EventEditorChanged.
type EditorService struct {
	mu      sync.Mutex
	ctl     *editor.Controller
	canvas  *editor.Canvas
	toolbox *editor.Toolbox

	store     domain.TemplateStore
	templates *TemplateService
	emitter   EventEmitter
	opts      EditorOptions

	dirty     bool
	lastSaved []byte // canvasData as last written by this session
	saving    saveGuard
	auto      autosaver
}

// NewEditorService creates a service holding a fresh single-page session.
func NewEditorService(store domain.TemplateStore, templates *TemplateService, emitter EventEmitter, opts EditorOptions) *EditorService {
	ctl := editor.New(editor.Options{
		HistoryLimit:    opts.HistoryLimit,
		BackgroundColor: opts.BackgroundColor,
		NewID:           opts.NewID,
		Random:          opts.Random,
	})
	return &EditorService{
		ctl:       ctl,
		canvas:    editor.NewCanvas(ctl, opts.CanvasWidth, opts.CanvasHeight),
		toolbox:   editor.NewToolbox(ctl),
		store:     store,
		templates: templates,
		emitter:   emitter,
		opts:      opts,
	}
}

// ── State ──────────────────────────────────────────────────

// EditorState is the full snapshot pushed to the frontend.
type EditorState struct {
	domain.SessionState
	Background string      `json:"canvasBackgroundColor"`
	Zoom       float64     `json:"zoom"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Preview    bool        `json:"preview"`
	Mode       editor.Mode `json:"mode"`
	Editing    string      `json:"editing,omitempty"`
	Dirty      bool        `json:"dirty"`
}

func (s *EditorService) State() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *EditorService) stateLocked() EditorState {
	return EditorState{
		SessionState: s.ctl.State(),
		Background:   s.ctl.Background(),
		Zoom:         s.canvas.Zoom(),
		Width:        s.canvas.Width(),
		Height:       s.canvas.Height(),
		Preview:      s.canvas.Preview(),
		Mode:         s.canvas.Mode(),
		Editing:      s.canvas.Editing(),
		Dirty:        s.dirty,
	}
}

// Element returns an element of the active page.
func (s *EditorService) Element(id string) (domain.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl.Element(id)
}

// Elements returns the elements of the active page.
func (s *EditorService) Elements() []domain.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl.Elements()
}

// Render returns the active page as HTML. The preview path ignores the
// selection and sorts by zIndex.
func (s *EditorService) Render(preview bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	els := s.ctl.Elements()
	if preview {
		els = s.canvas.PreviewElements()
	}
	return render.Page(els, render.Options{
		Width:      s.canvas.Width(),
		Height:     s.canvas.Height(),
		Background: s.ctl.Background(),
		Selected:   s.ctl.Selected(),
		Preview:    preview,
	})
}

func (s *EditorService) Actions() []editor.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toolbox.Actions()
}

func (s *EditorService) Layouts() []editor.Layout { return editor.Layouts() }

// ── Mutations ──────────────────────────────────────────────

// mutate runs fn under the lock and emits a change when fn reports one.
func (s *EditorService) mutate(ctx context.Context, fn func() bool) bool {
	return s.apply(ctx, true, fn)
}

// view is mutate for changes that are not saved, such as selection or zoom.
func (s *EditorService) view(ctx context.Context, fn func() bool) bool {
	return s.apply(ctx, false, fn)
}

func (s *EditorService) apply(ctx context.Context, persisted bool, fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	if changed && persisted {
		s.dirty = true
	}
	state := s.stateLocked()
	s.mu.Unlock()
	if changed {
		s.emitter.Emit(ctx, EventEditorChanged, state)
	}
	return changed
}

// AddElement appends a default element of type t to the active page.
func (s *EditorService) AddElement(ctx context.Context, t domain.ElementType, overrides editor.Patch) domain.Element {
	var el domain.Element
	s.mutate(ctx, func() bool {
		el = s.ctl.AddElement(t, overrides)
		return true
	})
	return el
}

// AddLayout appends a predefined layout to the active page.
func (s *EditorService) AddLayout(ctx context.Context, id int) []domain.Element {
	var els []domain.Element
	s.mutate(ctx, func() bool {
		els = s.ctl.AddLayout(id)
		return len(els) > 0
	})
	return els
}

// RunAction performs a toolbox entry.
func (s *EditorService) RunAction(ctx context.Context, a editor.Action) []domain.Element {
	var els []domain.Element
	s.mutate(ctx, func() bool {
		els = s.toolbox.Run(a)
		return len(els) > 0
	})
	return els
}

// UpdateElement merges patch without recording history. Used for
// continuous edits such as typing or dragging.
func (s *EditorService) UpdateElement(ctx context.Context, id string, patch editor.Patch) bool {
	return s.mutate(ctx, func() bool { return s.ctl.UpdateElement(id, patch) })
}

// StyleElement merges patch as one undoable step.
func (s *EditorService) StyleElement(ctx context.Context, id string, patch editor.Patch) bool {
	return s.mutate(ctx, func() bool { return s.ctl.StyleElement(id, patch) })
}

func (s *EditorService) MoveElement(ctx context.Context, id string, x, y float64) bool {
	return s.mutate(ctx, func() bool { return s.ctl.MoveElement(id, x, y) })
}

func (s *EditorService) SelectElement(ctx context.Context, id string) bool {
	return s.view(ctx, func() bool { return s.ctl.SelectElement(id) })
}

func (s *EditorService) ClearSelection(ctx context.Context) {
	s.view(ctx, func() bool {
		s.ctl.ClearSelection()
		return true
	})
}

// DeleteElement removes the selected element.
func (s *EditorService) DeleteElement(ctx context.Context) bool {
	return s.mutate(ctx, s.ctl.DeleteElement)
}

// DuplicateElement copies the selected element and selects the copy.
func (s *EditorService) DuplicateElement(ctx context.Context) (domain.Element, bool) {
	var el domain.Element
	ok := s.mutate(ctx, func() bool {
		var ok bool
		el, ok = s.ctl.DuplicateElement()
		return ok
	})
	return el, ok
}

// AddPage appends an empty page and returns its index.
func (s *EditorService) AddPage(ctx context.Context) int {
	var idx int
	s.mutate(ctx, func() bool {
		idx = s.ctl.AddPage()
		return true
	})
	return idx
}

func (s *EditorService) DeletePage(ctx context.Context, index int) bool {
	return s.mutate(ctx, func() bool { return s.ctl.DeletePage(index) })
}

func (s *EditorService) SetActivePage(ctx context.Context, index int) bool {
	return s.mutate(ctx, func() bool { return s.ctl.SetActivePage(index) })
}

func (s *EditorService) ClearPage(ctx context.Context) bool {
	return s.mutate(ctx, s.ctl.ClearPage)
}

func (s *EditorService) Undo(ctx context.Context) bool {
	return s.mutate(ctx, s.ctl.Undo)
}

func (s *EditorService) Redo(ctx context.Context) bool {
	return s.mutate(ctx, s.ctl.Redo)
}

// ── Canvas gestures ────────────────────────────────────────

func (s *EditorService) Click(ctx context.Context, id string) {
	s.view(ctx, func() bool {
		s.canvas.Click(id)
		return true
	})
}

func (s *EditorService) BeginDrag(ctx context.Context, id string) bool {
	return s.view(ctx, func() bool { return s.canvas.BeginDrag(id) })
}

func (s *EditorService) DragTo(ctx context.Context, dx, dy float64) bool {
	return s.mutate(ctx, func() bool { return s.canvas.DragTo(dx, dy) })
}

func (s *EditorService) EndDrag(ctx context.Context, dx, dy float64) bool {
	return s.mutate(ctx, func() bool { return s.canvas.EndDrag(dx, dy) })
}

func (s *EditorService) CancelDrag(ctx context.Context) {
	s.view(ctx, func() bool {
		s.canvas.CancelDrag()
		return true
	})
}

// Resize applies a handle drag given in screen units.
func (s *EditorService) Resize(ctx context.Context, id string, x, y, width, height float64) bool {
	return s.mutate(ctx, func() bool { return s.canvas.Resize(id, x, y, width, height) })
}

func (s *EditorService) BeginTextEdit(ctx context.Context, id string) bool {
	return s.view(ctx, func() bool { return s.canvas.BeginTextEdit(id) })
}

func (s *EditorService) CommitTextEdit(ctx context.Context, content string) bool {
	return s.mutate(ctx, func() bool { return s.canvas.CommitTextEdit(content) })
}

func (s *EditorService) DiscardTextEdit(ctx context.Context) {
	s.view(ctx, func() bool {
		s.canvas.DiscardTextEdit()
		return true
	})
}

func (s *EditorService) SetZoom(ctx context.Context, z float64) float64 {
	var out float64
	s.view(ctx, func() bool {
		s.canvas.SetZoom(z)
		out = s.canvas.Zoom()
		return true
	})
	return out
}

func (s *EditorService) SetPreview(ctx context.Context, on bool) {
	s.view(ctx, func() bool {
		s.canvas.SetPreview(on)
		return true
	})
}

// ── Toolbox styling ────────────────────────────────────────

// ApplyColor sets a solid background on the selection, or adds a card.
func (s *EditorService) ApplyColor(ctx context.Context, color string) string {
	var id string
	s.mutate(ctx, func() bool {
		id = s.toolbox.ApplyColor(color)
		return id != ""
	})
	return id
}

func (s *EditorService) ApplyGradient(ctx context.Context, from, to string, angle float64) string {
	var id string
	s.mutate(ctx, func() bool {
		id = s.toolbox.ApplyGradient(from, to, angle)
		return id != ""
	})
	return id
}

// ApplyPattern applies a named pattern. Unknown names return "".
func (s *EditorService) ApplyPattern(ctx context.Context, name string) string {
	var id string
	s.mutate(ctx, func() bool {
		id = s.toolbox.ApplyPattern(name)
		return id != ""
	})
	return id
}

func (s *EditorService) SetBackground(ctx context.Context, color string) {
	s.mutate(ctx, func() bool {
		s.ctl.SetBackground(color)
		return true
	})
}

// ── Persistence ────────────────────────────────────────────

// persistedHistory is the editorHistory entry.
type persistedHistory struct {
	Undo [][]domain.Page `json:"undo"`
	Redo [][]domain.Page `json:"redo"`
}

// Mount restores canvasData and, when enabled, editorHistory from the
// store. A missing entry keeps the fresh session.
func (s *EditorService) Mount(ctx context.Context) error {
	_, err := s.mount(ctx, false)
	return err
}

// mount loads the stored session and swaps it in. For an external reload
// the swap is skipped when the session picked up local edits or the stored
// bytes are this session's own last save; both are checked under the same
// lock as the swap.
func (s *EditorService) mount(ctx context.Context, external bool) (bool, error) {
	var data domain.CanvasData
	raw, err := s.store.Load(ctx, domain.KeyCanvasData)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if external {
			return false, nil
		}
	case err != nil:
		log.Printf("[STORE] load %s failed: %v", domain.KeyCanvasData, err)
		return false, err
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			log.Printf("[STORE] decode %s failed: %v", domain.KeyCanvasData, err)
			return false, fmt.Errorf("decode %s: %w", domain.KeyCanvasData, err)
		}
	}
	var hist persistedHistory
	if s.opts.PersistHistory {
		if err := loadJSON(ctx, s.store, domain.KeyEditorHistory, &hist); err != nil {
			log.Printf("[STORE] load %s failed: %v", domain.KeyEditorHistory, err)
		}
	}

	s.mu.Lock()
	if external && (s.dirty || bytes.Equal(raw, s.lastSaved)) {
		dirty := s.dirty
		s.mu.Unlock()
		if dirty {
			log.Printf("[EDITOR] external change ignored: unsaved edits")
		}
		return false, nil
	}
	restored := s.ctl.Restore(data)
	if restored {
		s.ctl.History().Restore(hist.Undo, hist.Redo)
	}
	s.dirty = false
	state := s.stateLocked()
	s.mu.Unlock()

	if restored {
		log.Printf("[EDITOR] restored %d page(s)", len(state.Pages))
	}
	s.emitter.Emit(ctx, EventEditorChanged, state)
	return true, nil
}

// Save writes the session to the store. Failures are logged and raised
// as an alert; the session stays usable.
func (s *EditorService) Save(ctx context.Context) error {
	if !s.saving.begin() {
		return nil
	}
	defer s.saving.end()

	s.mu.Lock()
	data := s.ctl.CanvasData()
	var hist persistedHistory
	if s.opts.PersistHistory {
		hist.Undo, hist.Redo = s.ctl.History().Stacks()
	}
	s.mu.Unlock()

	raw, err := json.Marshal(data)
	if err == nil {
		err = s.store.Save(ctx, domain.KeyCanvasData, raw)
	}
	if err != nil {
		log.Printf("[STORE] save %s failed: %v", domain.KeyCanvasData, err)
		s.alert(ctx, "Failed to save the canvas")
		return fmt.Errorf("save canvas: %w", err)
	}
	if s.opts.PersistHistory {
		if err := saveJSON(ctx, s.store, domain.KeyEditorHistory, hist); err != nil {
			log.Printf("[STORE] save %s failed: %v", domain.KeyEditorHistory, err)
		}
	}

	s.mu.Lock()
	s.dirty = false
	s.lastSaved = raw
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventEditorSaved, nil)
	return nil
}

// Dirty reports unsaved changes.
func (s *EditorService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SaveAsTemplate exports the active page as a user template. Validation
// failures raise an alert and leave the store untouched.
func (s *EditorService) SaveAsTemplate(ctx context.Context, name, category string) (*domain.Template, error) {
	s.mu.Lock()
	t, err := s.ctl.BuildTemplate(name, category)
	s.mu.Unlock()
	if err != nil {
		s.alert(ctx, err.Error())
		return nil, err
	}
	if err := s.templates.Add(ctx, *t); err != nil {
		log.Printf("[STORE] save template %q failed: %v", t.Name, err)
		s.alert(ctx, "Failed to save the template")
		return nil, fmt.Errorf("save template: %w", err)
	}
	log.Printf("[EDITOR] saved template %q (%d items)", t.Name, len(t.Content))
	return t, nil
}

// LoadTemplate replaces the active page with a stored template. It
// returns the number of items that could not be decoded.
func (s *EditorService) LoadTemplate(ctx context.Context, id string) (int, error) {
	t, err := s.templates.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.alert(ctx, "Template not found")
		}
		return 0, err
	}
	return s.ApplyTemplate(ctx, *t), nil
}

// ApplyTemplate replaces the active page with t as one undoable step.
func (s *EditorService) ApplyTemplate(ctx context.Context, t domain.Template) int {
	var skipped int
	s.mutate(ctx, func() bool {
		skipped = s.ctl.ApplyTemplate(t)
		return true
	})
	if skipped > 0 {
		log.Printf("[EDITOR] template %q: skipped %d item(s)", t.Name, skipped)
	}
	return skipped
}

// Reload re-reads canvasData after an external change, unless there are
// unsaved local edits or the stored data is this session's own last save.
func (s *EditorService) Reload(ctx context.Context) bool {
	if s.Dirty() {
		log.Printf("[EDITOR] external change ignored: unsaved edits")
		return false
	}
	ok, err := s.mount(ctx, true)
	if err != nil || !ok {
		return false
	}
	s.emitter.Emit(ctx, EventExternalChange, nil)
	return true
}

func (s *EditorService) alert(ctx context.Context, msg string) {
	s.emitter.Emit(ctx, EventEditorAlert, Alert{Message: msg})
}
