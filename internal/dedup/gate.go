// Package dedup implements the advisory duplicate check applied before
// enrichment. The authoritative dedup boundary is the store's uniqueness
// constraint at commit time; this gate only saves wasted work.
package dedup

import (
	"context"
	"fmt"

	"NewsIngest/internal/ports"
)

// Gate answers whether a candidate collides with a persisted article.
type Gate struct {
	repo ports.ArticleRepository
}

// NewGate wires the repository the gate probes.
func NewGate(repo ports.ArticleRepository) *Gate {
	return &Gate{repo: repo}
}

// IsDuplicate reports true when a persisted article already claims slug, or
// sourceURL when one is given. Never treated as a correctness guarantee
// under concurrent runs.
func (g *Gate) IsDuplicate(ctx context.Context, slug, sourceURL string) (bool, error) {
	if slug != "" {
		taken, err := g.repo.SlugExists(ctx, slug)
		if err != nil {
			return false, fmt.Errorf("probe slug: %w", err)
		}
		if taken {
			return true, nil
		}
	}

	if sourceURL != "" {
		seen, err := g.repo.SourceURLExists(ctx, sourceURL)
		if err != nil {
			return false, fmt.Errorf("probe source url: %w", err)
		}
		if seen {
			return true, nil
		}
	}

	return false, nil
}
