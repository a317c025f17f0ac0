package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"NewsIngest/internal/config"
	"NewsIngest/internal/dedup"
	"NewsIngest/internal/infrastructure/scheduler"
	"NewsIngest/internal/infrastructure/seo"
	"NewsIngest/internal/infrastructure/storage"
	"NewsIngest/internal/infrastructure/telegram"
	"NewsIngest/internal/logging"
	"NewsIngest/internal/ports"
	"NewsIngest/internal/slug"
	"NewsIngest/internal/source"
	"NewsIngest/internal/source/aigen"
	"NewsIngest/internal/source/rss"
	"NewsIngest/internal/source/scrape"
	"NewsIngest/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg          config.Config
	logger       *slog.Logger
	db           *sql.DB
	repository   *storage.PostgresRepository
	orchestrator *usecase.Orchestrator
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repository := storage.NewPostgresRepository(db)

	enricher := seo.NewEnricher(cfg.SEO)
	assembler := source.NewAssembler(
		slug.NewGenerator(repository),
		dedup.NewGate(repository),
		enricher,
		baseLogger.With("component", "assembler"),
	)

	registry := source.NewRegistry()
	registry.Register(rss.NewAdapter(assembler, baseLogger.With("component", "source.rss")))
	registry.Register(scrape.NewAdapter(nil, assembler, baseLogger.With("component", "source.scrape")))
	registry.Register(aigen.NewAdapter(cfg.SEO, assembler, baseLogger.With("component", "source.aigen")))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Registry:      registry,
		Repository:    repository,
		Notifier:      notifier,
		ItemLimit:     cfg.Ingest.ItemLimit,
		SourceTimeout: time.Duration(cfg.Ingest.SourceTimeout),
		Logger:        baseLogger.With("component", "orchestrator"),
	})

	return &Application{
		cfg:          cfg,
		logger:       baseLogger,
		db:           db,
		repository:   repository,
		orchestrator: orchestrator,
	}, nil
}

// Run executes a single ingestion when no cron expression is configured,
// otherwise keeps running scheduled ingestions until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.repository.EnsureSchema(ctx); err != nil {
		return err
	}

	if a.cfg.Scheduler.CronExpression == "" {
		report, err := a.orchestrator.RunIngestion(ctx, a.cfg.Sources)
		if err != nil {
			return err
		}
		a.logger.Info("ingestion done",
			"imported", report.Imported, "skipped", report.Skipped, "errors", len(report.Errors))
		return nil
	}

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	runs := usecase.NewScheduler(driver, a.orchestrator, a.cfg.Sources, a.logger.With("component", "scheduler"))

	if err := runs.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression)

	<-ctx.Done()
	return runs.Stop(context.Background())
}
