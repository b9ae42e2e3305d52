package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bouncecure/internal/config"
	mcpserver "bouncecure/internal/mcp"
	"bouncecure/internal/service"
	"bouncecure/internal/storage"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It initializes storage, services, and runs the MCP server until interrupted.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	emitter := service.NoopEmitter{}
	templates, editor := newServices(store, emitter, cfg)
	if err := editor.Mount(ctx); err != nil {
		log.Printf("[EDITOR] restore failed, starting empty: %v", err)
	}
	if err := editor.StartAutosave(ctx, cfg.Autosave.Schedule); err != nil {
		log.Printf("[AUTOSAVE] disabled: %v", err)
	}
	defer func() {
		editor.Stop()
		if editor.Dirty() {
			if err := editor.Save(context.Background()); err != nil {
				log.Printf("[EDITOR] final save failed: %v", err)
			}
		}
	}()

	// No frontend can answer approval prompts here.
	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Name:        cfg.MCP.Name,
		Version:     cfg.MCP.Version,
		Emitter:     emitter,
		Editor:      editor,
		Templates:   templates,
		AutoApprove: true,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Printf("MCP server error: %v", err)
	}
}
