package editor

import (
	"math"
	"sort"

	"bouncecure/internal/domain"
)

// Canvas defaults, in unscaled canvas units.
const (
	DefaultCanvasWidth  = 600
	DefaultCanvasHeight = 800

	MinZoom = 0.25
	MaxZoom = 3.0

	// growThreshold is how close an element's bottom edge may come to the
	// canvas bottom before the canvas grows; growPadding is the room added.
	growThreshold = 100
	growPadding   = 200
)

// Mode is the per-page editing state.
type Mode string

const (
	ModeIdle      Mode = "idle"
	ModeSelecting Mode = "selecting"
	ModeEditing   Mode = "editing"
)

// gesture is an in-flight drag.
type gesture struct {
	id      string
	startX  float64
	startY  float64
	before  []domain.Page
	version uint64
}

// Canvas is the interaction surface over the active page of a Controller.
// It reads and writes elements only through the controller.
type Canvas struct {
	ctl     *Controller
	zoom    float64
	width   float64
	height  float64
	preview bool
	editing string
	drag    *gesture
}

// NewCanvas creates a Canvas of the given unscaled size. Non-positive
// sizes select the defaults.
func NewCanvas(ctl *Controller, width, height float64) *Canvas {
	if width <= 0 {
		width = DefaultCanvasWidth
	}
	if height <= 0 {
		height = DefaultCanvasHeight
	}
	return &Canvas{ctl: ctl, zoom: 1, width: width, height: height}
}

func (cv *Canvas) Zoom() float64   { return cv.zoom }
func (cv *Canvas) Width() float64  { return cv.width }
func (cv *Canvas) Height() float64 { return cv.height }
func (cv *Canvas) Preview() bool   { return cv.preview }

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (cv *Canvas) SetZoom(z float64) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	cv.zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

// SetPreview toggles preview mode. Entering preview ends every in-flight
// interaction and clears the selection.
func (cv *Canvas) SetPreview(on bool) {
	cv.preview = on
	if on {
		cv.drag = nil
		cv.editing = ""
		cv.ctl.ClearSelection()
	}
}

// Mode reports the current editing state.
func (cv *Canvas) Mode() Mode {
	switch {
	case cv.editing != "" || cv.drag != nil:
		return ModeEditing
	case cv.ctl.Selected() != "":
		return ModeSelecting
	}
	return ModeIdle
}

// Editing returns the id of the element in inline text edit, or "".
func (cv *Canvas) Editing() string { return cv.editing }

// ── Selection ──────────────────────────────────────────────

// Click selects the element under the pointer; an empty id clears the
// selection.
func (cv *Canvas) Click(id string) {
	if cv.preview {
		return
	}
	if id == "" || !cv.ctl.SelectElement(id) {
		cv.ctl.ClearSelection()
	}
	if cv.editing != "" && cv.editing != cv.ctl.Selected() {
		cv.editing = ""
	}
}

// ── Drag ───────────────────────────────────────────────────

// BeginDrag starts moving an element and selects it.
func (cv *Canvas) BeginDrag(id string) bool {
	if cv.preview || cv.editing != "" {
		return false
	}
	el, ok := cv.ctl.Element(id)
	if !ok {
		return false
	}
	cv.ctl.SelectElement(id)
	cv.drag = &gesture{
		id:      id,
		startX:  el.X,
		startY:  el.Y,
		before:  cv.ctl.snapshot(),
		version: cv.ctl.history.Version(),
	}
	return true
}

// stale reports whether history moved during the gesture, e.g. an undo
// from another client. The captured snapshot no longer precedes the
// current state, so the gesture is abandoned.
func (cv *Canvas) stale() bool {
	return cv.drag != nil && cv.drag.version != cv.ctl.history.Version()
}

// DragTo moves the dragged element by an on-screen delta from the gesture
// origin. No history is recorded.
func (cv *Canvas) DragTo(dx, dy float64) bool {
	if cv.drag == nil || !finite(dx, dy) {
		return false
	}
	if cv.stale() {
		cv.drag = nil
		return false
	}
	x := cv.drag.startX + dx/cv.zoom
	y := cv.drag.startY + dy/cv.zoom
	if !cv.ctl.UpdateElement(cv.drag.id, Patch{"x": x, "y": y}) {
		cv.drag = nil
		return false
	}
	cv.grow(cv.drag.id)
	return true
}

// EndDrag applies the final on-screen delta and records the whole gesture
// as one undo step when the element moved.
func (cv *Canvas) EndDrag(dx, dy float64) bool {
	if cv.drag == nil {
		return false
	}
	g := cv.drag
	moved := cv.DragTo(dx, dy)
	cv.drag = nil
	if !moved {
		return false
	}
	if el, ok := cv.ctl.Element(g.id); ok && (el.X != g.startX || el.Y != g.startY) {
		cv.ctl.record(g.before)
	}
	return true
}

// CancelDrag restores the element to its gesture origin.
func (cv *Canvas) CancelDrag() {
	if cv.drag == nil {
		return
	}
	if cv.stale() {
		cv.drag = nil
		return
	}
	cv.ctl.UpdateElement(cv.drag.id, Patch{"x": cv.drag.startX, "y": cv.drag.startY})
	cv.drag = nil
}

// ── Resize ─────────────────────────────────────────────────

// Resize applies a completed resize gesture given in screen units. Text
// elements keep their x and width; every other type takes the full box.
func (cv *Canvas) Resize(id string, x, y, width, height float64) bool {
	if cv.preview || !finite(x, y, width, height) {
		return false
	}
	el, ok := cv.ctl.Element(id)
	if !ok {
		return false
	}
	x, y = x/cv.zoom, y/cv.zoom
	width = math.Max(0, width/cv.zoom)
	height = math.Max(0, height/cv.zoom)

	patch := Patch{"y": y, "height": height}
	if !el.Type.IsText() {
		patch["x"] = x
		patch["width"] = width
	}
	if !cv.ctl.StyleElement(id, patch) {
		return false
	}
	cv.grow(id)
	return true
}

// ── Inline text editing ────────────────────────────────────

// BeginTextEdit enters inline edit mode on a text-bearing element.
func (cv *Canvas) BeginTextEdit(id string) bool {
	if cv.preview || cv.drag != nil {
		return false
	}
	el, ok := cv.ctl.Element(id)
	if !ok || !(el.Type.IsText() || el.Type == domain.ElementButton) {
		return false
	}
	cv.ctl.SelectElement(id)
	cv.editing = id
	return true
}

// CommitTextEdit leaves edit mode and writes content back. A changed
// content becomes one undo step.
func (cv *Canvas) CommitTextEdit(content string) bool {
	id := cv.editing
	if id == "" {
		return false
	}
	cv.editing = ""
	el, ok := cv.ctl.Element(id)
	if !ok || el.Content == content {
		return false
	}
	return cv.ctl.StyleElement(id, Patch{"content": content})
}

// DiscardTextEdit leaves edit mode without writing.
func (cv *Canvas) DiscardTextEdit() { cv.editing = "" }

// ── Preview ────────────────────────────────────────────────

// PreviewElements returns the active page in paint order: stable by zIndex.
func (cv *Canvas) PreviewElements() []domain.Element {
	els := cv.ctl.Elements()
	sort.SliceStable(els, func(i, j int) bool { return els[i].ZIndex < els[j].ZIndex })
	return els
}

// grow extends the canvas when the element nears the bottom edge.
func (cv *Canvas) grow(id string) {
	el, ok := cv.ctl.Element(id)
	if !ok {
		return
	}
	bottom := el.Y + el.Height
	if bottom > cv.height-growThreshold {
		cv.height = bottom + growPadding
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
