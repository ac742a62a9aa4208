package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nyacktoday/nyack-events/app/api"
	"github.com/nyacktoday/nyack-events/app/cfg"
	"github.com/nyacktoday/nyack-events/app/database"
	"github.com/nyacktoday/nyack-events/app/notify"
	"github.com/nyacktoday/nyack-events/app/scrape"
	"github.com/nyacktoday/nyack-events/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Nyack Events server", "version", appCfg.Version)

	// Database connection
	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Connected to database", "host", appCfg.DBHost, "name", appCfg.DBName)

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations applied", "version", version, "dirty", dirty)

	// Initialize repositories
	eventRepo := database.NewEventRepo(db)
	activityRepo := database.NewActivityRepo(db)
	logRepo := database.NewScraperLogRepo(db)

	// Load per-source settings overrides
	settings, err := scrape.LoadSettings(appCfg.SourcesFile, scrape.SourceNames)
	if err != nil {
		slog.Error("Failed to load source settings", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}

	// Initialize core components
	httpClient := &http.Client{}
	sources := scrape.NewSources(httpClient, appCfg.UserAgent, settings)
	slog.Info("Registered sources", "count", len(sources))

	notifier := notify.NewNotifier(appCfg.DiscordWebhookURL, appCfg.SlackWebhookURL, nil)
	orchestrator := scrape.NewOrchestrator(sources, eventRepo, logRepo, notifier)

	// Initialize and start scheduler
	scheduler := tasks.NewScheduler(orchestrator)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started",
		"workers", appCfg.WorkerCount,
		"interval", (time.Duration(appCfg.ScrapeInterval) * time.Second).String())

	// Initialize HTTP server
	apiHandler := api.NewHandler(eventRepo, activityRepo, logRepo, orchestrator)
	server := api.NewServer(apiHandler, appCfg.ScraperAPIKey, appCfg.AdminPassword)

	// Create HTTP server with timeouts. Synchronous scrape runs can
	// take a while, hence the generous write timeout.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Nyack Events server started")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
