package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFile(t *testing.T) {
	raw := `
logging:
  level: warn
database:
  dsn: postgres://file:file@db:5432/news
ingest:
  itemLimit: 3
  sourceTimeout: 5s
sources:
  - name: techwire
    type: rss
    url: https://example.com/feed.xml
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NEWS_INGEST_CONFIG", path)
	t.Setenv("DATABASE_DSN", "")

	cfg := Load()

	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected level: %s", cfg.Logging.Level)
	}
	if cfg.Database.DSN != "postgres://file:file@db:5432/news" {
		t.Fatalf("unexpected dsn: %s", cfg.Database.DSN)
	}
	if cfg.Ingest.ItemLimit != 3 {
		t.Fatalf("unexpected item limit: %d", cfg.Ingest.ItemLimit)
	}
	if time.Duration(cfg.Ingest.SourceTimeout) != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Ingest.SourceTimeout)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "techwire" {
		t.Fatalf("unexpected sources: %+v", cfg.Sources)
	}

	// Fields absent from the file keep their defaults.
	if cfg.SEO.Model == "" {
		t.Fatal("seo defaults lost in merge")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_INGEST_CONFIG", "")
	t.Setenv("DATABASE_DSN", "postgres://env:env@db:5432/news")
	t.Setenv("SEO_API_KEY", "env-key")

	cfg := Load()

	if cfg.Database.DSN != "postgres://env:env@db:5432/news" {
		t.Fatalf("env dsn not applied: %s", cfg.Database.DSN)
	}
	if cfg.SEO.APIKey != "env-key" {
		t.Fatalf("env api key not applied: %s", cfg.SEO.APIKey)
	}
}
