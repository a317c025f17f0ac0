package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"NewsIngest/internal/config"
	"NewsIngest/internal/dedup"
	"NewsIngest/internal/domain"
	"NewsIngest/internal/slug"
	"NewsIngest/internal/source"
)

const testPage = `<!DOCTYPE html>
<html>
  <body>
    <h1 class="headline">Quantum Chips Go Mainstream</h1>
    <span class="byline">Sam Reporter</span>
    <article>
      <p>The first paragraph.</p>
      <img src="https://cdn.example.com/chip.jpg">
      <p>More text.</p>
    </article>
  </body>
</html>`

type fakeRepo struct {
	urls map[string]bool
}

func (f *fakeRepo) SlugExists(context.Context, string) (bool, error) { return false, nil }

func (f *fakeRepo) SourceURLExists(_ context.Context, u string) (bool, error) {
	return f.urls[u], nil
}

func (f *fakeRepo) SlugsMatching(context.Context, string) ([]string, error) { return nil, nil }

func (f *fakeRepo) InsertMany(context.Context, []domain.CandidateArticle) (domain.CommitResult, error) {
	return domain.CommitResult{}, nil
}

type fakeEnricher struct{}

func (fakeEnricher) Enrich(context.Context, string, string) (domain.SEOMetadata, error) {
	return domain.SEOMetadata{MetaDescription: "meta", Score: 60}, nil
}

func newAdapter(repo *fakeRepo) *Adapter {
	asm := source.NewAssembler(slug.NewGenerator(repo), dedup.NewGate(repo), fakeEnricher{}, nil)
	return NewAdapter(nil, asm, nil)
}

func TestFetchPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer server.Close()

	adapter := newAdapter(&fakeRepo{})
	req := source.Request{Source: config.SourceConfig{
		Name: "quantumblog",
		URL:  server.URL,
		Options: map[string]string{
			"titleSelector":   "h1.headline",
			"contentSelector": "article",
			"authorSelector":  ".byline",
		},
	}}

	result, err := adapter.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(result.Candidates))
	}

	got := result.Candidates[0]
	if got.Title != "Quantum Chips Go Mainstream" {
		t.Fatalf("unexpected title: %s", got.Title)
	}
	if got.Slug != "quantum-chips-go-mainstream" {
		t.Fatalf("unexpected slug: %s", got.Slug)
	}
	if got.Author != "Sam Reporter" {
		t.Fatalf("unexpected author: %s", got.Author)
	}
	if !strings.Contains(got.Content, "first paragraph") {
		t.Fatalf("content selector not applied: %q", got.Content)
	}
	if got.CoverImage != "https://cdn.example.com/chip.jpg" {
		t.Fatalf("unexpected cover: %s", got.CoverImage)
	}
	if got.SourceType != domain.SourceScrape || got.SourceURL != server.URL {
		t.Fatalf("unexpected source fields: %+v", got)
	}
}

func TestFetchPageAlreadyIngested(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer server.Close()

	adapter := newAdapter(&fakeRepo{urls: map[string]bool{server.URL: true}})
	req := source.Request{Source: config.SourceConfig{Name: "quantumblog", URL: server.URL}}

	result, err := adapter.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if result.Skipped != 1 || len(result.Candidates) != 0 {
		t.Fatalf("expected duplicate skip, got %+v", result)
	}
}

func TestFetchPageFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := newAdapter(&fakeRepo{})
	req := source.Request{Source: config.SourceConfig{Name: "deadpage", URL: server.URL}}

	if _, err := adapter.Fetch(context.Background(), req); err == nil {
		t.Fatal("expected fetch error")
	}
}
