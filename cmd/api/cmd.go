package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/realestate-assistant/internal/bootstrap"
	"github.com/GregMSThompson/realestate-assistant/internal/config"
	"github.com/GregMSThompson/realestate-assistant/internal/handlers"
	"github.com/GregMSThompson/realestate-assistant/internal/response"
	"github.com/GregMSThompson/realestate-assistant/internal/router"
	"github.com/GregMSThompson/realestate-assistant/internal/services"
	"github.com/GregMSThompson/realestate-assistant/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer func() {
		if err := bs.Close(); err != nil {
			bs.Log.Warn("shutdown cleanup failed", "error", err)
		}
	}()

	// services
	sampling := services.WithSampling(cfg.VertexTemperature, cfg.VertexMaxTokens)
	gserv := services.NewGenerationService(nil)
	if bs.VertexAdapter != nil {
		gserv = services.NewGenerationService(bs.VertexAdapter, sampling)
	}
	var opts []services.PresenterOption
	if bs.Firestore != nil {
		opts = append(opts, services.WithSessionStore(store.NewSessionStore(bs.Firestore), cfg.SessionTTL))
	}
	pserv := services.NewPresenterService(bs.WeatherAdapter, bs.AirQualityAdapter, bs.ListingsAdapter, gserv, cfg.DefaultPrompt, opts...)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.PresenterSvc = pserv
	deps.GenerationSvc = gserv

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("graceful shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "addr", srv.Addr, "session_store", cfg.SessionStore, "generation_enabled", bs.VertexAdapter != nil)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
}
