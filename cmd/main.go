package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moidabeast/chattr/config"
	"github.com/moidabeast/chattr/internal/access"
	"github.com/moidabeast/chattr/internal/media"
	"github.com/moidabeast/chattr/internal/service"
	httpx "github.com/moidabeast/chattr/internal/transport/http"
	"github.com/moidabeast/chattr/internal/transport/ws"
	"github.com/moidabeast/chattr/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chattr",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- state ---
	core := service.NewCore()
	core.SetLivenessWindow(cfg.Window())

	// --- collaborators ---
	validator := media.NewValidator()
	gate := access.NewGate(cfg.Chat.Admins)

	// --- services ---
	roomSvc := service.NewRoomService(core, validator)
	chatSvc := service.NewChatService(core)
	reactionSvc := service.NewReactionService(core)
	presenceSvc := service.NewPresenceService(core, gate)

	// --- WS Hub & Server ---
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, roomSvc, chatSvc, presenceSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(roomSvc, chatSvc, reactionSvc, presenceSvc, hub)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
