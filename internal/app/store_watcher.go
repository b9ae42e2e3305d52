package app

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"bouncecure/internal/domain"
	"bouncecure/internal/service"
)

// storeWatcher polls the Template Store for changes made by another
// process (e.g. a standalone MCP server sharing the database) and
// refreshes the session so the frontend follows along.
type storeWatcher struct {
	ctx     context.Context
	store   domain.TemplateStore
	editor  *service.EditorService
	emitter service.EventEmitter
	every   time.Duration

	mu   sync.Mutex
	last map[string]uint64 // key -> content fingerprint

	runMu  sync.Mutex
	stopCh chan struct{}
	done   chan struct{}
}

// watchedKeys are the entries another process may rewrite.
var watchedKeys = []string{
	domain.KeyCanvasData,
	domain.KeyUserCreatedTemplates,
	domain.KeySavedTemplates,
}

func newStoreWatcher(ctx context.Context, store domain.TemplateStore, editor *service.EditorService, emitter service.EventEmitter) *storeWatcher {
	return &storeWatcher{
		ctx:     ctx,
		store:   store,
		editor:  editor,
		emitter: emitter,
		every:   2 * time.Second,
		last:    map[string]uint64{},
	}
}

// Start begins the polling loop. Calling it again while running is a no-op.
func (w *storeWatcher) Start() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.stopCh != nil {
		return
	}
	w.check() // prime fingerprints
	stop, done := make(chan struct{}), make(chan struct{})
	w.stopCh, w.done = stop, done
	go w.pollLoop(stop, done)
}

// Stop terminates the polling loop and waits for it to exit, so the store
// can be closed right after.
func (w *storeWatcher) Stop() {
	w.runMu.Lock()
	stop, done := w.stopCh, w.done
	w.stopCh, w.done = nil, nil
	w.runMu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (w *storeWatcher) pollLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-stop:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

// check compares fingerprints and reports the keys that changed since the
// previous call. The first observation of a key is never a change.
func (w *storeWatcher) check() []string {
	var changed []string
	for _, key := range watchedKeys {
		data, err := w.store.Load(w.ctx, key)
		if err != nil {
			continue
		}
		h := fnv.New64a()
		h.Write(data)
		sum := h.Sum64()

		w.mu.Lock()
		prev, seen := w.last[key]
		w.last[key] = sum
		w.mu.Unlock()
		if seen && prev != sum {
			changed = append(changed, key)
		}
	}

	templatesChanged := false
	for _, key := range changed {
		switch key {
		case domain.KeyCanvasData:
			w.editor.Reload(w.ctx)
		default:
			templatesChanged = true
		}
	}
	if templatesChanged {
		w.emitter.Emit(w.ctx, service.EventTemplatesChanged, nil)
	}
	return changed
}
