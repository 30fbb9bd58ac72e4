package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/zaqqye/evaluasi_backend/internal/auth"
	"github.com/zaqqye/evaluasi_backend/internal/logger"
	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/routes"
	"github.com/zaqqye/evaluasi_backend/internal/version"
	"github.com/zaqqye/evaluasi_backend/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := logger.Get()
	log.Info().Str("version", version.Version).Str("store", a.cfg.StoreDriver).Msg("Starting API server")

	a.store.Load(ctx)

	gate := auth.NewGate(a.store, a.cfg.Subjects, a.cfg.AdminPassword)
	sessions := auth.NewSessions(gate, a.cfg.JWTSecret, a.cfg.SessionTTL())
	hub := ws.NewHub()
	go hub.Run(ctx)

	if a.cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.LoggingMiddleware())
	routes.Register(r, routes.Deps{Config: a.cfg, Store: a.store, Sessions: sessions, Hub: hub})

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", a.cfg.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server exited")
	return nil
}
