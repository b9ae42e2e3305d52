package service

import (
	"context"
	"log"

	"bouncecure/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main Wails window size between sessions,
// stored next to the editor entries under KeyWindowSize.

// KeyWindowSize is the store key of the saved window size.
const KeyWindowSize = "windowSize"

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	store domain.TemplateStore
}

func NewWindowSettingsService(store domain.TemplateStore) *WindowSettingsService {
	return &WindowSettingsService{store: store}
}

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *WindowSettingsService) LoadWindowSize(ctx context.Context) WindowSize {
	size := WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if s.store == nil {
		return size
	}
	if err := loadJSON(ctx, s.store, KeyWindowSize, &size); err != nil {
		log.Printf("[STORE] load %s failed: %v", KeyWindowSize, err)
	}
	if size.Width < 800 {
		size.Width = defaultWindowWidth
	}
	if size.Height < 600 {
		size.Height = defaultWindowHeight
	}
	return size
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(ctx context.Context, width, height int) error {
	if s.store == nil {
		return nil
	}
	return saveJSON(ctx, s.store, KeyWindowSize, WindowSize{Width: width, Height: height})
}
