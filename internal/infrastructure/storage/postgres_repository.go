package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NewsIngest/internal/domain"
	"NewsIngest/internal/ports"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists articles into Postgres. The unique index on
// slug (and the partial one on source_url) is the authoritative dedup
// boundary for concurrent ingestion runs.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the articles table and its uniqueness constraints.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			cover_image TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT 'Unknown Author',
			tags TEXT[] NOT NULL DEFAULT '{}',
			source_type TEXT NOT NULL,
			source_url TEXT,
			meta_description TEXT NOT NULL DEFAULT '',
			meta_keywords TEXT[] NOT NULL DEFAULT '{}',
			seo_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			published_at TIMESTAMPTZ NOT NULL,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			view_count BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS articles_slug_key ON articles (slug)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS articles_source_url_key ON articles (source_url)
			WHERE source_url IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

// SlugExists reports whether a persisted article claims slug.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query, args, err := psql.Select("1").From("articles").Where(sq.Eq{"slug": slug}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build slug query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query slug: %w", err)
	}

	return true, nil
}

// SourceURLExists reports whether a persisted article claims url.
func (r *PostgresRepository) SourceURLExists(ctx context.Context, url string) (bool, error) {
	query, args, err := psql.Select("1").From("articles").Where(sq.Eq{"source_url": url}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build source url query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query source url: %w", err)
	}

	return true, nil
}

// SlugsMatching returns every persisted slug equal to base or carrying a
// numeric -N suffix on it.
func (r *PostgresRepository) SlugsMatching(ctx context.Context, base string) ([]string, error) {
	pattern := "^" + regexp.QuoteMeta(base) + "(-[0-9]+)?$"
	query, args, err := psql.Select("slug").From("articles").Where("slug ~ ?", pattern).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slugs query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return slugs, nil
}

// InsertMany commits the batch row by row with ON CONFLICT DO NOTHING, so a
// duplicate never aborts its siblings. Only an unreachable store fails the
// whole call.
func (r *PostgresRepository) InsertMany(ctx context.Context, articles []domain.CandidateArticle) (domain.CommitResult, error) {
	var result domain.CommitResult

	if len(articles) == 0 {
		return result, nil
	}

	if err := r.db.PingContext(ctx); err != nil {
		return result, &domain.StoreUnavailableError{Err: err}
	}

	for _, a := range articles {
		var sourceURL any
		if a.SourceURL != "" {
			sourceURL = a.SourceURL
		}

		query, args, err := psql.Insert("articles").
			Columns("slug", "title", "content", "excerpt", "cover_image", "author", "tags",
				"source_type", "source_url", "meta_description", "meta_keywords", "seo_score",
				"published_at", "is_published").
			Values(a.Slug, a.Title, a.Content, a.Excerpt, a.CoverImage, a.Author, pq.Array(orEmpty(a.Tags)),
				string(a.SourceType), sourceURL, a.MetaDescription, pq.Array(orEmpty(a.MetaKeywords)), a.SEOScore,
				a.PublishedAt, a.IsPublished).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			result.Errors = append(result.Errors, domain.SourceError{Source: a.Slug, Message: err.Error()})
			continue
		}

		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
				result.Duplicates++
				continue
			}
			result.Errors = append(result.Errors, domain.SourceError{Source: a.Slug, Message: err.Error()})
			continue
		}

		affected, err := res.RowsAffected()
		if err != nil {
			result.Errors = append(result.Errors, domain.SourceError{Source: a.Slug, Message: err.Error()})
			continue
		}
		if affected == 0 {
			result.Duplicates++
			continue
		}

		result.Inserted++
	}

	return result, nil
}

// orEmpty keeps nil slices out of pq.Array: a nil array encodes as SQL NULL,
// which would bypass the NOT NULL DEFAULT '{}' on the array columns.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
