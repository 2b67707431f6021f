package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/mini-social-be/internal/api"
	"github.com/isdelr/mini-social-be/internal/config"
	"github.com/isdelr/mini-social-be/internal/logger"
	"github.com/isdelr/mini-social-be/internal/monitoring"
	"github.com/isdelr/mini-social-be/internal/services"
	"github.com/isdelr/mini-social-be/internal/storage"
	"github.com/isdelr/mini-social-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up the blob store
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(store)
	identityService := services.NewIdentityService(store, eventService)
	postService := services.NewPostService(store, eventService, hub)

	if err := identityService.EnsureDemoUser(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo user")
	}

	// Set up and run the background store monitor
	storeMonitor := monitoring.NewStoreMonitor(store.Path(), cfg.StoreSoftLimitMB, eventService, hub)
	go storeMonitor.Run()

	// Set up and run the background snapshotter
	snapshotter, err := monitoring.NewSnapshotter(store.Path(), cfg.SnapshotPath, cfg.SnapshotCron, cfg.SnapshotKeep, eventService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshotter")
	}
	go snapshotter.Run()

	// Set up router
	router := api.NewRouter(hub, identityService, postService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	storeMonitor.Stop()
	snapshotter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
