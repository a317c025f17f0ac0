package slug

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"NewsIngest/internal/ports"
)

// Slugify derives a canonical URL-safe identifier from a title: lowercase,
// trimmed, "&" spelled out as "-and-", every run of non-word characters
// collapsed into a single dash. Underscores are word characters and survive.
// Total and deterministic.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "&", "-and-")

	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Generator resolves slug collisions against persisted articles.
type Generator struct {
	repo ports.ArticleRepository
}

// NewGenerator wires the repository used for collision probes.
func NewGenerator(repo ports.ArticleRepository) *Generator {
	return &Generator{repo: repo}
}

// Unique returns Slugify(title) when it is unclaimed, otherwise the base
// with a numeric suffix one greater than the highest persisted suffix.
// The probe reads shared state; concurrent claims of the same base are
// settled by the store's uniqueness constraint, not here.
func (g *Generator) Unique(ctx context.Context, title string) (string, error) {
	base := Slugify(title)

	taken, err := g.repo.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("probe slug %s: %w", base, err)
	}
	if !taken {
		return base, nil
	}

	existing, err := g.repo.SlugsMatching(ctx, base)
	if err != nil {
		return "", fmt.Errorf("list slugs for %s: %w", base, err)
	}
	if len(existing) == 0 {
		// Exact match vanished between the two reads; claim the first suffix.
		return base + "-1", nil
	}

	max := 0
	for _, s := range existing {
		rest := strings.TrimPrefix(s, base)
		if rest == "" {
			continue
		}
		n, convErr := strconv.Atoi(strings.TrimPrefix(rest, "-"))
		if convErr != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s-%d", base, max+1), nil
}
