package domain

import (
	"context"
	"errors"
	"time"
)

// Template Store keys.
const (
	KeyCanvasData           = "canvasData"
	KeyUserCreatedTemplates = "userCreatedTemplates"
	KeySavedTemplates       = "savedTemplates"
	KeyEditorHistory        = "editorHistory"
)

const DefaultTemplateCategory = "Custom"

// ErrNotFound is returned by a TemplateStore when a key has no value.
var ErrNotFound = errors.New("not found")

// TemplateItem is the reduced persisted shape of one Element.
type TemplateItem struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Style map[string]any `json:"style"`
}

// Template is a named export of one page's elements.
type Template struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Category              string         `json:"category"`
	Content               []TemplateItem `json:"content"`
	CanvasBackgroundColor string         `json:"canvasBackgroundColor"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

// TemplateStore is the keyed persistence boundary of the editor. Values
// are JSON documents.
type TemplateStore interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
}
