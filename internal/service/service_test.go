package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/service"
	"bouncecure/internal/storage"
)

// sequentialIDs returns an id generator yielding el-1, el-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("el-%d", n)
	}
}

func newTestEditor(t *testing.T) (*service.EditorService, *storage.MemoryStore, *service.MockEmitter) {
	t.Helper()
	store := storage.NewMemoryStore()
	emitter := &service.MockEmitter{}
	templates := service.NewTemplateService(store, emitter)
	svc := service.NewEditorService(store, templates, emitter, service.EditorOptions{
		HistoryLimit:   20,
		PersistHistory: true,
		NewID:          sequentialIDs(),
		Random:         func() float64 { return 0 },
	})
	return svc, store, emitter
}

// ─────────────────────────────────────────────────────────────
// MockEmitter tests
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_Named(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, service.EventEditorChanged, nil)
	m.Emit(ctx, service.EventEditorAlert, service.Alert{Message: "x"})
	m.Emit(ctx, service.EventEditorChanged, nil)

	assert.Len(t, m.Events, 3)
	assert.Len(t, m.Named(service.EventEditorChanged), 2)
	alerts := m.Named(service.EventEditorAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, service.Alert{Message: "x"}, alerts[0].Data)
}

// ─────────────────────────────────────────────────────────────
// WindowSettingsService tests
// ─────────────────────────────────────────────────────────────

func TestWindowSettings_DefaultsAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := service.NewWindowSettingsService(storage.NewMemoryStore())

	assert.Equal(t, service.WindowSize{Width: 1280, Height: 800}, svc.LoadWindowSize(ctx))

	require.NoError(t, svc.SaveWindowSize(ctx, 1440, 900))
	assert.Equal(t, service.WindowSize{Width: 1440, Height: 900}, svc.LoadWindowSize(ctx))

	require.NoError(t, svc.SaveWindowSize(ctx, 100, 100))
	assert.Equal(t, service.WindowSize{Width: 1280, Height: 800}, svc.LoadWindowSize(ctx), "tiny sizes fall back")
}
