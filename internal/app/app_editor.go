package app

import (
	"bouncecure/internal/domain"
	"bouncecure/internal/editor"
	"bouncecure/internal/service"
)

// ============================================================
// Editor session
// ============================================================

func (a *App) GetEditorState() service.EditorState {
	return a.editor.State()
}

func (a *App) GetToolboxActions() []editor.Action {
	return a.editor.Actions()
}

func (a *App) GetLayouts() []editor.Layout {
	return a.editor.Layouts()
}

// RenderPage returns the active page as HTML.
func (a *App) RenderPage(preview bool) string {
	return a.editor.Render(preview)
}

// ============================================================
// Elements
// ============================================================

func (a *App) AddElement(elementType string, overrides map[string]any) domain.Element {
	return a.editor.AddElement(a.ctx, domain.ElementType(elementType), overrides)
}

func (a *App) AddLayout(layoutID int) []domain.Element {
	return a.editor.AddLayout(a.ctx, layoutID)
}

func (a *App) RunToolboxAction(action editor.Action) []domain.Element {
	return a.editor.RunAction(a.ctx, action)
}

// UpdateElement is for continuous edits; it does not create an undo step.
func (a *App) UpdateElement(id string, patch map[string]any) bool {
	return a.editor.UpdateElement(a.ctx, id, patch)
}

// StyleElement is for discrete property changes; it creates one undo step.
func (a *App) StyleElement(id string, patch map[string]any) bool {
	return a.editor.StyleElement(a.ctx, id, patch)
}

func (a *App) SelectElement(id string) bool {
	return a.editor.SelectElement(a.ctx, id)
}

func (a *App) ClearSelection() {
	a.editor.ClearSelection(a.ctx)
}

func (a *App) DeleteElement() bool {
	return a.editor.DeleteElement(a.ctx)
}

func (a *App) DuplicateElement() (domain.Element, bool) {
	return a.editor.DuplicateElement(a.ctx)
}

// ============================================================
// Canvas gestures
// ============================================================

func (a *App) CanvasClick(id string) {
	a.editor.Click(a.ctx, id)
}

func (a *App) BeginDrag(id string) bool {
	return a.editor.BeginDrag(a.ctx, id)
}

func (a *App) DragTo(dx, dy float64) bool {
	return a.editor.DragTo(a.ctx, dx, dy)
}

func (a *App) EndDrag(dx, dy float64) bool {
	return a.editor.EndDrag(a.ctx, dx, dy)
}

func (a *App) CancelDrag() {
	a.editor.CancelDrag(a.ctx)
}

func (a *App) ResizeElement(id string, x, y, width, height float64) bool {
	return a.editor.Resize(a.ctx, id, x, y, width, height)
}

func (a *App) BeginTextEdit(id string) bool {
	return a.editor.BeginTextEdit(a.ctx, id)
}

func (a *App) CommitTextEdit(content string) bool {
	return a.editor.CommitTextEdit(a.ctx, content)
}

func (a *App) DiscardTextEdit() {
	a.editor.DiscardTextEdit(a.ctx)
}

func (a *App) SetZoom(zoom float64) float64 {
	return a.editor.SetZoom(a.ctx, zoom)
}

func (a *App) SetPreview(on bool) {
	a.editor.SetPreview(a.ctx, on)
}

// ============================================================
// Styling
// ============================================================

func (a *App) ApplyColor(color string) string {
	return a.editor.ApplyColor(a.ctx, color)
}

func (a *App) ApplyGradient(from, to string, angle float64) string {
	return a.editor.ApplyGradient(a.ctx, from, to, angle)
}

func (a *App) ApplyPattern(name string) string {
	return a.editor.ApplyPattern(a.ctx, name)
}

func (a *App) SetCanvasBackground(color string) {
	a.editor.SetBackground(a.ctx, color)
}

// ============================================================
// Pages & history
// ============================================================

func (a *App) AddPage() int {
	return a.editor.AddPage(a.ctx)
}

func (a *App) DeletePage(index int) bool {
	return a.editor.DeletePage(a.ctx, index)
}

func (a *App) SetActivePage(index int) bool {
	return a.editor.SetActivePage(a.ctx, index)
}

func (a *App) ClearPage() bool {
	return a.editor.ClearPage(a.ctx)
}

func (a *App) Undo() bool {
	return a.editor.Undo(a.ctx)
}

func (a *App) Redo() bool {
	return a.editor.Redo(a.ctx)
}

func (a *App) Save() error {
	return a.editor.Save(a.ctx)
}
