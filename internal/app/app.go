package app

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"bouncecure/internal/config"
	mcpserver "bouncecure/internal/mcp"
	"bouncecure/internal/service"
	"bouncecure/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg *config.Config

	store     storage.Store
	editor    *service.EditorService
	templates *service.TemplateService
	window    *service.WindowSettingsService
	watcher   *storeWatcher

	mcp     *mcpserver.Server
	mcpHTTP *server.StreamableHTTPServer
}

// New creates a new App.
func New() *App {
	return &App{}
}

// wailsEmitter forwards service events to the frontend. It always emits on
// the Wails context: callers such as MCP handlers pass request contexts
// the runtime cannot use.
type wailsEmitter struct {
	ctx context.Context
}

func (e wailsEmitter) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(e.ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load(config.Path())
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load config: %v", err)
		return
	}
	a.cfg = cfg

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open store: %v", err)
		return
	}
	a.store = store

	emitter := wailsEmitter{ctx: ctx}
	a.templates, a.editor = newServices(store, emitter, cfg)
	a.window = service.NewWindowSettingsService(store)

	if err := a.editor.Mount(ctx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to restore editor: %v", err)
	}
	if err := a.editor.StartAutosave(ctx, cfg.Autosave.Schedule); err != nil {
		wailsRuntime.LogErrorf(ctx, "Autosave disabled: %v", err)
	}

	// The file store pushes changes; every other backend is polled so edits
	// from a standalone MCP process still reach the window.
	if _, ok := store.(service.Watcher); ok {
		if cfg.Storage.Watch {
			if err := a.editor.WatchStore(ctx); err != nil {
				wailsRuntime.LogErrorf(ctx, "Failed to watch store: %v", err)
			}
		}
	} else {
		a.watcher = newStoreWatcher(ctx, store, a.editor, emitter)
		a.watcher.Start()
	}

	if cfg.MCP.Listen != "" {
		a.startMCPHTTP(ctx, emitter)
	}

	size := a.window.LoadWindowSize(ctx)
	wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.window != nil {
		w, h := wailsRuntime.WindowGetSize(ctx)
		if err := a.window.SaveWindowSize(ctx, w, h); err != nil {
			log.Printf("[STORE] save window size failed: %v", err)
		}
	}
	if a.mcpHTTP != nil {
		if err := a.mcpHTTP.Shutdown(ctx); err != nil {
			log.Printf("[MCP] http shutdown: %v", err)
		}
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.editor != nil {
		a.editor.Stop()
		if a.editor.Dirty() {
			if err := a.editor.Save(ctx); err != nil {
				log.Printf("[EDITOR] final save failed: %v", err)
			}
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}

// newServices builds the template and editor services shared by the
// desktop and standalone entry points.
func newServices(store storage.Store, emitter service.EventEmitter, cfg *config.Config) (*service.TemplateService, *service.EditorService) {
	templates := service.NewTemplateService(store, emitter)
	editor := service.NewEditorService(store, templates, emitter, service.EditorOptions{
		HistoryLimit:    cfg.Editor.HistoryLimit,
		CanvasWidth:     cfg.Editor.CanvasWidth,
		CanvasHeight:    cfg.Editor.CanvasHeight,
		BackgroundColor: cfg.Editor.BackgroundColor,
		PersistHistory:  cfg.Editor.PersistHistory,
	})
	return templates, editor
}

// startMCPHTTP serves the editor's MCP tools over streamable HTTP. Tool
// calls act on the same session the window shows; destructive calls wait
// for the user through ApproveMCPAction / RejectMCPAction.
func (a *App) startMCPHTTP(ctx context.Context, emitter service.EventEmitter) {
	a.mcp = mcpserver.New(ctx, mcpserver.Deps{
		Name:      a.cfg.MCP.Name,
		Version:   a.cfg.MCP.Version,
		Emitter:   emitter,
		Editor:    a.editor,
		Templates: a.templates,
	})
	a.mcpHTTP = server.NewStreamableHTTPServer(a.mcp.MCPServer())
	go func() {
		log.Printf("[MCP] Serving http on %s", a.cfg.MCP.Listen)
		if err := a.mcpHTTP.Start(a.cfg.MCP.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[MCP] http server error: %v", err)
		}
	}()
}

// ApproveMCPAction approves a pending destructive MCP tool call.
func (a *App) ApproveMCPAction(actionID string) {
	if a.mcp != nil {
		a.mcp.Approve(actionID)
	}
}

// RejectMCPAction rejects a pending destructive MCP tool call.
func (a *App) RejectMCPAction(actionID string) {
	if a.mcp != nil {
		a.mcp.Reject(actionID)
	}
}
