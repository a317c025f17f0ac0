// Package scrape ingests single pages from configured scrape targets.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsIngest/internal/domain"
	"NewsIngest/internal/source"
)

const (
	defaultTitleSelector   = "h1"
	defaultContentSelector = "article"
)

// Adapter fetches one configured page and extracts a candidate from it.
type Adapter struct {
	client    *http.Client
	assembler *source.Assembler
	logger    *slog.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter wires an HTTP client; a nil client gets a bounded default.
func NewAdapter(client *http.Client, assembler *source.Assembler, logger *slog.Logger) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Adapter{client: client, assembler: assembler, logger: logger}
}

// Type identifies the adapter inside the registry.
func (a *Adapter) Type() domain.SourceType {
	return domain.SourceScrape
}

// Fetch downloads the target page, extracts title/content/author through the
// configured selectors, and assembles a single candidate.
func (a *Adapter) Fetch(ctx context.Context, req source.Request) (source.Result, error) {
	var result source.Result

	doc, err := a.fetchDocument(ctx, req.Source.URL)
	if err != nil {
		return result, fmt.Errorf("target %s: %w", req.Source.Name, err)
	}

	raw, err := extractItem(doc, req.Source.URL, req.Source.Options)
	if err != nil {
		return result, fmt.Errorf("target %s: %w", req.Source.Name, err)
	}

	candidate, status, err := a.assembler.Build(ctx, raw, domain.SourceScrape, true)
	if err != nil {
		result.Errors = append(result.Errors, domain.SourceError{
			Source:  req.Source.Name,
			Message: err.Error(),
		})
		return result, nil
	}
	if status == source.BuildSkippedDuplicate {
		result.Skipped++
		return result, nil
	}

	result.Candidates = append(result.Candidates, candidate)
	return result, nil
}

func (a *Adapter) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "NewsIngest/1.0")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

func extractItem(doc *goquery.Document, pageURL string, options map[string]string) (source.RawItem, error) {
	titleSel := optionOr(options, "titleSelector", defaultTitleSelector)
	contentSel := optionOr(options, "contentSelector", defaultContentSelector)

	title := strings.TrimSpace(doc.Find(titleSel).First().Text())
	if title == "" {
		return source.RawItem{}, fmt.Errorf("selector %q matched no title", titleSel)
	}

	body, err := doc.Find(contentSel).First().Html()
	if err != nil {
		return source.RawItem{}, fmt.Errorf("render content: %w", err)
	}

	var author string
	if sel := options["authorSelector"]; sel != "" {
		author = strings.TrimSpace(doc.Find(sel).First().Text())
	}

	return source.RawItem{
		Title:   title,
		Content: strings.TrimSpace(body),
		Author:  author,
		URL:     pageURL,
	}, nil
}

func optionOr(options map[string]string, key, fallback string) string {
	if v := options[key]; v != "" {
		return v
	}
	return fallback
}
