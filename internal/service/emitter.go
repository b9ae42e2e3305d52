package service

import (
	"context"
	"sync"
)

// Events emitted to the frontend.
const (
	EventEditorChanged    = "editor:changed"
	EventEditorAlert      = "editor:alert"
	EventEditorSaved      = "editor:saved"
	EventTemplatesChanged = "templates:changed"
	EventExternalChange   = "editor:external-change"
)

// EventEmitter is an interface for emitting events to the frontend.
// The App struct implements this by delegating to wailsRuntime.EventsEmit,
// so services stay testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Alert is the payload of EventEditorAlert.
type Alert struct {
	Message string `json:"message"`
}

// NoopEmitter drops every event. Used when no frontend is attached.
type NoopEmitter struct{}

func (NoopEmitter) Emit(_ context.Context, _ string, _ any) {}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	mu     sync.Mutex
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Named returns every recorded emission of event, oldest first.
func (m *MockEmitter) Named(event string) []EmittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []EmittedEvent
	for _, e := range m.Events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}
