// Package scheduler triggers recurring discovery runs over the configured
// default categories and sources.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/config"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/notifications"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/pipeline"
)

// Service runs the pipeline on a cron schedule and forwards the results to
// the notification channels.
type Service struct {
	config   *config.Config
	pipe     *pipeline.Pipeline
	notifier notifications.Notifier
	cron     *cron.Cron
}

// NewService creates a scheduler service.
func NewService(cfg *config.Config, pipe *pipeline.Pipeline, notifier notifications.Notifier) *Service {
	return &Service{
		config:   cfg,
		pipe:     pipe,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start begins scheduled discovery. A no-op when SCRAPE_SCHEDULE is unset.
func (s *Service) Start() error {
	if s.config.ScrapeSchedule == "" {
		logrus.Info("No scrape schedule configured, scheduler idle")
		return nil
	}

	var cronExpression string
	switch s.config.ScrapeSchedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		cronExpression = "0 0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, s.runDiscovery)
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s discovery schedule", s.config.ScrapeSchedule)
	return nil
}

func (s *Service) runDiscovery() {
	logrus.Info("Starting scheduled discovery run")

	platforms := make([]models.Platform, 0, len(s.config.DefaultSources))
	for _, source := range s.config.DefaultSources {
		platform := models.Platform(source)
		if !platform.Valid() {
			logrus.Warnf("Skipping invalid default source %q", source)
			continue
		}
		platforms = append(platforms, platform)
	}

	posts, err := s.pipe.Run(context.Background(), pipeline.Request{
		Categories: s.config.DefaultCategories,
		Platforms:  platforms,
		DaysBack:   s.config.DefaultDaysBack,
	})
	if err != nil {
		logrus.Errorf("Scheduled discovery run failed: %v", err)
		return
	}

	if err := s.notifier.SendDigest(posts); err != nil {
		logrus.Errorf("Failed to send discovery digest: %v", err)
	}
}

// Stop stops the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
