package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/config"
	"github.com/mauv0809/padel-draw/internal/database"
	server "github.com/mauv0809/padel-draw/internal/http"
	"github.com/mauv0809/padel-draw/internal/live"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/notifier/slack"
	"github.com/mauv0809/padel-draw/internal/playtomic"
	"github.com/mauv0809/padel-draw/internal/processor"
	"github.com/mauv0809/padel-draw/internal/pubsub"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	totals := metrics.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient = pubsub.New(cfg.ProjectID, cfg.TopicPrefix)
	} else {
		log.Warn("No GCP project configured, events are not published")
		pubsubClient = pubsub.NewNoop()
	}
	defer pubsubClient.Close()

	var levels processor.LevelSource
	if cfg.TenantID != "" {
		levels = playtomic.NewLevelLookup(playtomic.NewClient(), cfg.TenantID)
	} else {
		log.Warn("No Playtomic tenant configured, auto seeding uses stored levels only")
	}

	hub := live.NewHub()
	processor := processor.New(clubStore, notifier, metricsSvc, totals, pubsubClient, hub, levels)
	processor.SetMaxEntrants(cfg.MaxEntrants)

	s := server.NewServer(
		processor,
		metricsSvc,
		metricsHandler,
		cfg,
		hub,
		pubsubClient,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	serve(&http.Server{Addr: ":" + cfg.Port, Handler: s}, hub)
	log.Info("Server process shutting down")
}

// serve runs srv until it fails or the process is asked to stop, then drains
// open requests and live connections.
func serve(srv *http.Server, hub *live.Hub) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Hijacked websocket connections are not closed by Shutdown.
		hub.Close()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return
		}
		log.Info("Server gracefully stopped")
	}
}
