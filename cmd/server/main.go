package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blockquest.dev/internal/blocks"
	"blockquest.dev/internal/blueprint"
	"blockquest.dev/internal/config"
	"blockquest.dev/internal/inventory"
	"blockquest.dev/internal/persistence/blueprintdb"
	"blockquest.dev/internal/persistence/buildlog"
	"blockquest.dev/internal/reconcile"
	"blockquest.dev/internal/transport/ws"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to config yaml (defaults apply when empty)")
		addr    = flag.String("addr", "", "http listen address (overrides config)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	pal := blocks.Default()
	if cfg.PaletteFile != "" {
		pal, err = blocks.Load(cfg.PaletteFile)
		if err != nil {
			logger.Fatalf("load palette: %v", err)
		}
	}
	resolver := blocks.NewResolver(pal, logger)

	catalog := blueprint.NewCatalog()
	if cfg.BlueprintDir != "" {
		if err := catalog.LoadDir(cfg.BlueprintDir, pal); err != nil {
			logger.Fatalf("load blueprints: %v", err)
		}
	} else {
		if err := blueprint.RegisterBuiltins(catalog); err != nil {
			logger.Fatalf("builtin blueprints: %v", err)
		}
	}

	var store *blueprintdb.Store
	if cfg.DBPath != "" {
		store, err = blueprintdb.Open(cfg.DBPath, logger)
		if err != nil {
			logger.Fatalf("open blueprint db: %v", err)
		}
		defer store.Close()

		defs, err := store.LoadAll()
		if err != nil {
			logger.Fatalf("load imported blueprints: %v", err)
		}
		for _, def := range defs {
			bp, err := blueprint.FromDef(def, blueprint.Imported, pal)
			if err != nil {
				logger.Printf("skipping persisted blueprint %s: %v", def.ID, err)
				continue
			}
			if err := catalog.Add(bp); err != nil {
				logger.Printf("skipping persisted blueprint %s: %v", def.ID, err)
			}
		}
		logger.Printf("loaded %d persisted blueprint(s)", len(defs))
	}

	var sink reconcile.BuildSink
	if cfg.BuildLogDir != "" {
		w := buildlog.New(cfg.BuildLogDir, "builds")
		defer w.Close()
		sink = w
	}

	inv := inventory.NewMemory()

	server := ws.NewServer(ws.Deps{
		Palette:  pal,
		Resolver: resolver,
		Catalog:  catalog,
		Inv:      inv,
		Store:    store,
		Sink:     sink,
		Engine: reconcile.Config{
			DebounceWindow: time.Duration(cfg.DebounceMs) * time.Millisecond,
			RebuildDelay:   time.Duration(cfg.RebuildDelayMs) * time.Millisecond,
		},
		Log:            logger,
		MaxImportBytes: cfg.WS.MaxImportBytes,
	}, cfg.WS.ReadBufferBytes, cfg.WS.WriteBufferBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", server.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signalContext()
	defer cancel()
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s (%d blueprints, %d block types)", cfg.ListenAddr, catalog.Len(), pal.Size())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
