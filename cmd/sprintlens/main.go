package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sprintlens/sprintlens/internal/api"
	"github.com/sprintlens/sprintlens/internal/config"
	"github.com/sprintlens/sprintlens/internal/loader"
	"github.com/sprintlens/sprintlens/internal/store"
	"github.com/sprintlens/sprintlens/internal/ws"
	"github.com/sprintlens/sprintlens/pkg/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("sprintlens starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"dataset", cfg.Dataset.Path,
		"watch", cfg.Dataset.Watch,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initial dataset load. A broken dataset (bad references, bad dates) is
	// fatal here — the engine only ever runs on a validated snapshot.
	snap, err := loader.Load(cfg.Dataset.Path)
	if err != nil {
		slog.Error("failed to load dataset", "path", cfg.Dataset.Path, "err", err)
		os.Exit(1)
	}

	st := store.New()
	if err := st.Replace(snap); err != nil {
		slog.Error("failed to compute reports", "err", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded",
		"sprints", len(snap.Sprints), "tasks", len(snap.Tasks))

	// WebSocket hub — pushes fresh reports to clients on every reload.
	hub := ws.New(st)
	go hub.Run(ctx)

	// Reload the dataset on file changes; a failed reload keeps the
	// previous snapshot serving.
	if cfg.Dataset.Watch {
		go func() {
			err := loader.Watch(ctx, cfg.Dataset.Path, func(next *types.Snapshot) {
				if err := st.Replace(next); err != nil {
					slog.Error("reload rejected — keeping previous reports", "err", err)
					return
				}
				hub.Broadcast()
			})
			if err != nil {
				slog.Error("dataset watcher stopped", "err", err)
			}
		}()
	}

	// Combined HTTP server: REST API + metrics + WebSocket hub.
	httpMux := http.NewServeMux()
	apiHandler := api.New(st, cfg.Server.Auth)
	httpMux.Handle("/api/", apiHandler)
	httpMux.Handle("/metrics", apiHandler)
	httpMux.Handle("/ws/reports", hub)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("sprintlens shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
