package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"NewsIngest/internal/config"
	"NewsIngest/internal/domain"
	"NewsIngest/internal/ports"
	"NewsIngest/internal/source"
)

// OrchestratorDeps wires all driven adapters into the ingestion run.
type OrchestratorDeps struct {
	Registry      *source.Registry
	Repository    ports.ArticleRepository
	Notifier      ports.Notifier
	ItemLimit     int
	SourceTimeout time.Duration
	Logger        *slog.Logger
}

// Orchestrator fans out across configured sources, aggregates their
// candidates, and commits the batch with continue-on-error semantics.
type Orchestrator struct {
	registry      *source.Registry
	repository    ports.ArticleRepository
	notifier      ports.Notifier
	itemLimit     int
	sourceTimeout time.Duration
	logger        *slog.Logger
}

// NewOrchestrator constructs the orchestration component.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{
		registry:      deps.Registry,
		repository:    deps.Repository,
		notifier:      deps.Notifier,
		itemLimit:     deps.ItemLimit,
		sourceTimeout: deps.SourceTimeout,
		logger:        deps.Logger,
	}
}

type sourceOutcome struct {
	result source.Result
	err    error
}

// RunIngestion executes one full run over the configured sources. Every
// per-source and per-item failure is folded into the returned report; the
// returned error is non-nil only when the store is unreachable at commit
// time, and the same failure is also recorded in the report.
func (o *Orchestrator) RunIngestion(ctx context.Context, sources []config.SourceConfig) (domain.IngestReport, error) {
	var report domain.IngestReport

	outcomes := make([]sourceOutcome, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src config.SourceConfig) {
			defer wg.Done()
			outcomes[i] = o.fetchSource(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var batch []domain.CandidateArticle
	for i, outcome := range outcomes {
		if outcome.err != nil {
			report.Errors = append(report.Errors, domain.SourceError{
				Source:  sources[i].Name,
				Message: outcome.err.Error(),
			})
			continue
		}
		report.Skipped += outcome.result.Skipped
		report.Errors = append(report.Errors, outcome.result.Errors...)
		batch = append(batch, outcome.result.Candidates...)
	}

	if len(batch) == 0 {
		o.debug("ingestion run produced no candidates", "skipped", report.Skipped, "errors", len(report.Errors))
		o.notify(ctx, report)
		return report, nil
	}

	commit, err := o.repository.InsertMany(ctx, batch)
	if err != nil {
		// Store unreachable at commit time is the run's sole fatal condition.
		report.Errors = append(report.Errors, domain.SourceError{Source: "store", Message: err.Error()})
		o.notify(ctx, report)
		return report, err
	}

	report.Imported = commit.Inserted
	report.Skipped += commit.Duplicates
	report.Errors = append(report.Errors, commit.Errors...)

	o.debug("ingestion run finished",
		"imported", report.Imported, "skipped", report.Skipped, "errors", len(report.Errors))
	o.notify(ctx, report)

	return report, nil
}

// fetchSource resolves and executes one adapter under its own deadline.
// One source failing or timing out never cancels its siblings.
func (o *Orchestrator) fetchSource(ctx context.Context, src config.SourceConfig) sourceOutcome {
	adapter, err := o.registry.Resolve(domain.SourceType(src.Type))
	if err != nil {
		return sourceOutcome{err: err}
	}

	if o.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.sourceTimeout)
		defer cancel()
	}

	result, err := adapter.Fetch(ctx, source.Request{Source: src, Limit: o.itemLimit})
	return sourceOutcome{result: result, err: err}
}

func (o *Orchestrator) notify(ctx context.Context, report domain.IngestReport) {
	if o.notifier == nil {
		return
	}
	if err := o.notifier.PublishReport(ctx, report); err != nil {
		o.warn("publish run report failed", "error", err)
	}
}

func (o *Orchestrator) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

func (o *Orchestrator) warn(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, args...)
	}
}
