package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/api"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/config"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/enrich"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/jobs"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/notifications"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/pipeline"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/scheduler"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/scrapers"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting BoredPanda Content Sourcing Bot")

	sources := []scrapers.Source{
		scrapers.NewTikTokSource(cfg.ApifyAPIToken),
		scrapers.NewInstagramSource(cfg.ApifyAPIToken),
		scrapers.NewFacebookSource(cfg.ApifyAPIToken),
		scrapers.NewTwitterSource(cfg.ApifyAPIToken),
		scrapers.NewRSSSource(cfg.ApifyAPIToken),
	}

	var enricher enrich.Enricher
	if cfg.EnableEnrichment {
		enricher = enrich.NewOpenAI(enrich.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	} else {
		logrus.Info("Enrichment disabled, using rule-based scores only")
	}

	pipe := pipeline.New(sources, enricher, pipeline.Options{
		EnrichTopK:        cfg.EnrichTopK,
		EnrichConcurrency: cfg.EnrichConcurrency,
		OutputSize:        cfg.OutputSize,
		LimitPerSource:    cfg.LimitPerSource,
	})

	store := jobs.NewStore(time.Duration(cfg.JobTTLMinutes) * time.Minute)

	notifier := notifications.NewService(cfg)
	schedulerService := scheduler.NewService(cfg, pipe, notifier)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewServer(pipe, store).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
