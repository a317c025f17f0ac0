package domain

import "time"

// SourceType tags where a piece of content came from.
type SourceType string

const (
	SourceRSS    SourceType = "rss"
	SourceScrape SourceType = "scrape"
	SourceAI     SourceType = "ai"
	SourceManual SourceType = "manual"
)

// CandidateArticle is an in-flight article produced by a source adapter,
// not yet accepted into storage.
type CandidateArticle struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	CoverImage      string
	Author          string
	Tags            []string
	SourceType      SourceType
	SourceURL       string
	MetaDescription string
	MetaKeywords    []string
	SEOScore        float64
	PublishedAt     time.Time
	IsPublished     bool
}

// SEOMetadata carries enricher output attached to a candidate.
type SEOMetadata struct {
	MetaDescription string
	Keywords        []string
	Score           float64
}
