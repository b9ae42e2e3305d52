package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"bouncecure/internal/domain"
)

// ── Autosave + store watching ──────────────────────────────

// Watcher is implemented by stores that can report external changes,
// such as the file store.
type Watcher interface {
	Watch(ctx context.Context, onChange func(key string)) error
}

// autosaver owns the cron schedule and the store watch of a session.
type autosaver struct {
	mu          sync.Mutex
	cronSched   *cron.Cron
	watchCancel context.CancelFunc
}

// StartAutosave saves dirty sessions on schedule, a cron expression such
// as "@every 30s". An empty schedule disables autosave.
func (s *EditorService) StartAutosave(ctx context.Context, schedule string) error {
	s.auto.mu.Lock()
	defer s.auto.mu.Unlock()
	s.auto.stopCron()
	if schedule == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if !s.Dirty() {
			return
		}
		log.Printf("[AUTOSAVE] saving session")
		if err := s.Save(ctx); err != nil {
			log.Printf("[AUTOSAVE] save failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("autosave: invalid schedule %q: %w", schedule, err)
	}
	c.Start()
	s.auto.cronSched = c
	log.Printf("[AUTOSAVE] scheduled %q", schedule)
	return nil
}

// WatchStore reloads the session and the template list when the store
// changes outside this process. Stores that cannot watch are ignored.
func (s *EditorService) WatchStore(ctx context.Context) error {
	w, ok := s.store.(Watcher)
	if !ok {
		return nil
	}
	s.auto.mu.Lock()
	if s.auto.watchCancel != nil {
		s.auto.watchCancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	s.auto.watchCancel = cancel
	s.auto.mu.Unlock()

	var (
		timersMu sync.Mutex
		timers   = map[string]*time.Timer{}
	)
	return w.Watch(watchCtx, func(key string) {
		timersMu.Lock()
		defer timersMu.Unlock()
		if t, exists := timers[key]; exists {
			t.Stop()
		}
		timers[key] = time.AfterFunc(300*time.Millisecond, func() {
			switch key {
			case domain.KeyCanvasData:
				s.Reload(ctx)
			case domain.KeyUserCreatedTemplates, domain.KeySavedTemplates:
				s.emitter.Emit(ctx, EventTemplatesChanged, nil)
			}
		})
	})
}

// Stop tears down autosave and the store watch, waiting briefly for an
// in-flight save.
func (s *EditorService) Stop() {
	s.auto.mu.Lock()
	s.auto.stopCron()
	if s.auto.watchCancel != nil {
		s.auto.watchCancel()
		s.auto.watchCancel = nil
	}
	s.auto.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.saving.wait(ctx)
}

func (a *autosaver) stopCron() {
	if a.cronSched != nil {
		a.cronSched.Stop()
		a.cronSched = nil
	}
}
