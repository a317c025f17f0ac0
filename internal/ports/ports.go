package ports

import (
	"context"
	"time"

	"NewsIngest/internal/domain"
)

// ArticleRepository persists committed articles and answers the duplicate
// probes the pipeline relies on. The store enforces uniqueness of slug (and
// source URL) itself; callers treat read probes as advisory only.
type ArticleRepository interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	SourceURLExists(ctx context.Context, url string) (bool, error)
	// SlugsMatching returns every persisted slug equal to base or equal to
	// base plus a numeric -N suffix.
	SlugsMatching(ctx context.Context, base string) ([]string, error)
	// InsertMany commits a batch with continue-on-error semantics: a
	// uniqueness violation on one row never aborts the rest.
	InsertMany(ctx context.Context, articles []domain.CandidateArticle) (domain.CommitResult, error)
}

// MetadataEnricher derives SEO metadata for a candidate. May fail per call.
type MetadataEnricher interface {
	Enrich(ctx context.Context, title, content string) (domain.SEOMetadata, error)
}

// Notifier delivers the run summary to an out-of-band channel.
type Notifier interface {
	PublishReport(ctx context.Context, report domain.IngestReport) error
}

// Scheduler controls when ingestion runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
