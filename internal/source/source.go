package source

import (
	"context"
	"fmt"
	"time"

	"NewsIngest/internal/config"
	"NewsIngest/internal/domain"
)

// Request carries everything an adapter needs for one fetch.
type Request struct {
	Source config.SourceConfig
	Limit  int
}

// Result is the common adapter output: zero or more candidates plus the
// per-item skips and recovered errors accumulated along the way.
type Result struct {
	Candidates []domain.CandidateArticle
	Skipped    int
	Errors     []domain.SourceError
}

// RawItem is one normalized unit of source output before assembly. Adapters
// resolve their format-specific field fallbacks into this shape.
type RawItem struct {
	Title       string
	Content     string
	Author      string
	URL         string
	Categories  []string
	PublishedAt time.Time
}

// Adapter converts a source-specific payload into candidate articles.
// A returned error means the whole invocation failed; adapters never mix
// partial output with an unreported failure.
type Adapter interface {
	Type() domain.SourceType
	Fetch(ctx context.Context, req Request) (Result, error)
}

// Registry maps source types to their adapter implementations.
type Registry struct {
	adapters map[domain.SourceType]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[domain.SourceType]Adapter{}}
}

// Register adds or replaces an adapter.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[domain.SourceType]Adapter{}
	}
	r.adapters[adapter.Type()] = adapter
}

// Resolve returns the adapter for a source type or an error if absent.
func (r *Registry) Resolve(sourceType domain.SourceType) (Adapter, error) {
	if adapter, ok := r.adapters[sourceType]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("no adapter registered for source type %s", sourceType)
}
