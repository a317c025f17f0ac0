package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsIngest/internal/config"
	"NewsIngest/internal/ports"
)

// Scheduler wires the cron driver with the ingestion orchestrator.
type Scheduler struct {
	driver       ports.Scheduler
	orchestrator *Orchestrator
	sources      []config.SourceConfig
	logger       *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring ingestion runs.
func NewScheduler(driver ports.Scheduler, orchestrator *Orchestrator, sources []config.SourceConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, orchestrator: orchestrator, sources: sources, logger: logger}
}

// Start registers the ingestion run with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.orchestrator == nil {
		return nil
	}

	job := func(trigger time.Time) {
		report, err := s.orchestrator.RunIngestion(ctx, s.sources)
		if err != nil {
			s.log(slog.LevelError, "scheduled run failed", "trigger", trigger, "error", err)
			return
		}
		s.log(slog.LevelInfo, "scheduled run done",
			"trigger", trigger, "imported", report.Imported, "skipped", report.Skipped, "errors", len(report.Errors))
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}

func (s *Scheduler) log(level slog.Level, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Log(context.Background(), level, msg, args...)
	}
}
