package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsIngest/internal/content"
	"NewsIngest/internal/dedup"
	"NewsIngest/internal/domain"
	"NewsIngest/internal/ports"
	"NewsIngest/internal/slug"
)

const fallbackAuthor = "Unknown Author"

// BuildStatus tells the adapter what happened to one raw item.
type BuildStatus int

const (
	BuildAccepted BuildStatus = iota
	BuildSkippedDuplicate
)

// Assembler turns raw items into candidates, applying the rules shared by
// every adapter: duplicate short-circuit before enrichment, slug and excerpt
// derivation, cover-image extraction, SEO enrichment.
type Assembler struct {
	slugs    *slug.Generator
	gate     *dedup.Gate
	enricher ports.MetadataEnricher
	logger   *slog.Logger
}

// NewAssembler wires the shared candidate-building dependencies.
func NewAssembler(slugs *slug.Generator, gate *dedup.Gate, enricher ports.MetadataEnricher, logger *slog.Logger) *Assembler {
	return &Assembler{slugs: slugs, gate: gate, enricher: enricher, logger: logger}
}

// Build produces one candidate from a raw item. A BuildSkippedDuplicate
// status means a persisted article already claims the item's slug or URL.
// Errors are per-item and must not abort sibling items.
func (a *Assembler) Build(ctx context.Context, raw RawItem, sourceType domain.SourceType, published bool) (domain.CandidateArticle, BuildStatus, error) {
	if raw.Title == "" {
		return domain.CandidateArticle{}, BuildAccepted, fmt.Errorf("item has no title")
	}

	dup, err := a.gate.IsDuplicate(ctx, slug.Slugify(raw.Title), raw.URL)
	if err != nil {
		return domain.CandidateArticle{}, BuildAccepted, fmt.Errorf("duplicate probe for %q: %w", raw.Title, err)
	}
	if dup {
		a.debug("skip duplicate", "title", raw.Title, "url", raw.URL)
		return domain.CandidateArticle{}, BuildSkippedDuplicate, nil
	}

	uniqueSlug, err := a.slugs.Unique(ctx, raw.Title)
	if err != nil {
		return domain.CandidateArticle{}, BuildAccepted, fmt.Errorf("slug for %q: %w", raw.Title, err)
	}

	meta, err := a.enricher.Enrich(ctx, raw.Title, raw.Content)
	if err != nil {
		return domain.CandidateArticle{}, BuildAccepted, fmt.Errorf("enrich %q: %w", raw.Title, err)
	}

	author := raw.Author
	if author == "" {
		author = fallbackAuthor
	}

	publishedAt := raw.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	candidate := domain.CandidateArticle{
		Title:           raw.Title,
		Slug:            uniqueSlug,
		Content:         raw.Content,
		Excerpt:         content.Excerpt(raw.Content),
		CoverImage:      content.CoverImage(raw.Content),
		Author:          author,
		Tags:            raw.Categories,
		SourceType:      sourceType,
		SourceURL:       raw.URL,
		MetaDescription: meta.MetaDescription,
		MetaKeywords:    meta.Keywords,
		SEOScore:        meta.Score,
		PublishedAt:     publishedAt,
		IsPublished:     published,
	}

	return candidate, BuildAccepted, nil
}

func (a *Assembler) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
