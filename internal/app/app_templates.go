package app

import (
	"bouncecure/internal/domain"
)

// ============================================================
// Templates
// ============================================================

func (a *App) ListTemplates() ([]domain.Template, error) {
	return a.templates.List(a.ctx)
}

func (a *App) ListTemplatesByCategory(category string) ([]domain.Template, error) {
	return a.templates.ListByCategory(a.ctx, category)
}

// SaveAsTemplate saves the active page. Validation failures are also
// raised as an editor:alert event.
func (a *App) SaveAsTemplate(name, category string) (*domain.Template, error) {
	return a.editor.SaveAsTemplate(a.ctx, name, category)
}

// LoadTemplate replaces the active page and returns how many items could
// not be decoded.
func (a *App) LoadTemplate(id string) (int, error) {
	return a.editor.LoadTemplate(a.ctx, id)
}

func (a *App) RenameTemplate(id, name string) error {
	return a.templates.Rename(a.ctx, id, name)
}

func (a *App) DeleteTemplate(id string) error {
	return a.templates.Delete(a.ctx, id)
}

func (a *App) ListSavedTemplateIDs() ([]string, error) {
	return a.templates.SavedIDs(a.ctx)
}

func (a *App) ToggleSavedTemplate(id string) (bool, error) {
	return a.templates.ToggleSaved(a.ctx, id)
}
