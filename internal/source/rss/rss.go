// Package rss ingests configured RSS/Atom feeds.
package rss

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"NewsIngest/internal/domain"
	"NewsIngest/internal/source"
)

// Adapter converts feed items into candidate articles.
type Adapter struct {
	parser    *gofeed.Parser
	assembler *source.Assembler
	logger    *slog.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter wires the feed parser with the shared assembler.
func NewAdapter(assembler *source.Assembler, logger *slog.Logger) *Adapter {
	return &Adapter{
		parser:    gofeed.NewParser(),
		assembler: assembler,
		logger:    logger,
	}
}

// Type identifies the adapter inside the registry.
func (a *Adapter) Type() domain.SourceType {
	return domain.SourceRSS
}

// Fetch parses the configured feed and assembles up to req.Limit items in
// feed order. A fetch or parse failure of the feed itself yields an empty
// result with a recorded warning; item-level failures skip only that item.
func (a *Adapter) Fetch(ctx context.Context, req source.Request) (source.Result, error) {
	var result source.Result

	feed, err := a.parser.ParseURLWithContext(req.Source.URL, ctx)
	if err != nil {
		a.warn("feed fetch failed", "source", req.Source.Name, "url", req.Source.URL, "error", err)
		result.Errors = append(result.Errors, domain.SourceError{
			Source:  req.Source.Name,
			Message: "feed fetch failed: " + err.Error(),
		})
		return result, nil
	}

	items := feed.Items
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}

	for _, item := range items {
		raw := source.RawItem{
			Title:      item.Title,
			Content:    itemContent(item),
			Author:     itemAuthor(item),
			URL:        item.Link,
			Categories: item.Categories,
		}
		if item.PublishedParsed != nil {
			raw.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			raw.PublishedAt = *item.UpdatedParsed
		}

		candidate, status, buildErr := a.assembler.Build(ctx, raw, domain.SourceRSS, true)
		if buildErr != nil {
			result.Errors = append(result.Errors, domain.SourceError{
				Source:  req.Source.Name,
				Message: buildErr.Error(),
			})
			continue
		}
		if status == source.BuildSkippedDuplicate {
			result.Skipped++
			continue
		}

		result.Candidates = append(result.Candidates, candidate)
	}

	return result, nil
}

// itemContent prefers full encoded content over the plain content field,
// falling back to the item snippet.
func itemContent(item *gofeed.Item) string {
	if enc, ok := item.Extensions["content"]["encoded"]; ok && len(enc) > 0 && enc[0].Value != "" {
		return enc[0].Value
	}
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}

func itemAuthor(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if len(item.Authors) > 0 && item.Authors[0].Name != "" {
		return item.Authors[0].Name
	}
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return ""
}

func (a *Adapter) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
