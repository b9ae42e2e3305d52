package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bouncecure/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Template Service: user-created templates and saved ids
// ─────────────────────────────────────────────────────────────

// TemplateService manages the userCreatedTemplates and savedTemplates keys
// of a TemplateStore.
type TemplateService struct {
	store   domain.TemplateStore
	emitter EventEmitter
}

func NewTemplateService(store domain.TemplateStore, emitter EventEmitter) *TemplateService {
	return &TemplateService{store: store, emitter: emitter}
}

// List returns every user-created template, oldest first.
func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	var list []domain.Template
	if err := loadJSON(ctx, s.store, domain.KeyUserCreatedTemplates, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByCategory filters List by category, case-insensitively.
func (s *TemplateService) ListByCategory(ctx context.Context, category string) ([]domain.Template, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Template
	for _, t := range list {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Get returns a template by id, or domain.ErrNotFound.
func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
}

// Add appends t to the user templates and marks it saved.
func (s *TemplateService) Add(ctx context.Context, t domain.Template) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	list = append(list, t)
	if err := saveJSON(ctx, s.store, domain.KeyUserCreatedTemplates, list); err != nil {
		return err
	}
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return err
	}
	if !contains(ids, t.ID) {
		ids = append(ids, t.ID)
		if err := saveJSON(ctx, s.store, domain.KeySavedTemplates, ids); err != nil {
			return err
		}
	}
	s.emitter.Emit(ctx, EventTemplatesChanged, nil)
	return nil
}

// Rename changes the display name of a template.
func (s *TemplateService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("template name is required")
	}
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Name = name
			list[i].UpdatedAt = time.Now()
			if err := saveJSON(ctx, s.store, domain.KeyUserCreatedTemplates, list); err != nil {
				return err
			}
			s.emitter.Emit(ctx, EventTemplatesChanged, nil)
			return nil
		}
	}
	return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
}

// Delete removes a template and its saved marker. Unknown ids are a no-op.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	if err := saveJSON(ctx, s.store, domain.KeyUserCreatedTemplates, kept); err != nil {
		return err
	}
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return err
	}
	if contains(ids, id) {
		if err := saveJSON(ctx, s.store, domain.KeySavedTemplates, remove(ids, id)); err != nil {
			return err
		}
	}
	s.emitter.Emit(ctx, EventTemplatesChanged, nil)
	return nil
}

// SavedIDs returns the ids marked as saved.
func (s *TemplateService) SavedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := loadJSON(ctx, s.store, domain.KeySavedTemplates, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ToggleSaved flips the saved marker of id and reports the new state.
func (s *TemplateService) ToggleSaved(ctx context.Context, id string) (bool, error) {
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return false, err
	}
	saved := !contains(ids, id)
	if saved {
		ids = append(ids, id)
	} else {
		ids = remove(ids, id)
	}
	if err := saveJSON(ctx, s.store, domain.KeySavedTemplates, ids); err != nil {
		return false, err
	}
	s.emitter.Emit(ctx, EventTemplatesChanged, nil)
	return saved, nil
}

// ── helpers ────────────────────────────────────────────────

// loadJSON decodes key into v. A missing key leaves v untouched.
func loadJSON(ctx context.Context, store domain.TemplateStore, key string, v any) error {
	data, err := store.Load(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func saveJSON(ctx context.Context, store domain.TemplateStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Save(ctx, key, data)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
