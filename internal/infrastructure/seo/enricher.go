// Package seo talks to an OpenAI-compatible API to derive article metadata.
package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"NewsIngest/internal/config"
	"NewsIngest/internal/domain"
	"NewsIngest/internal/ports"
)

const systemPrompt = "You are an SEO assistant. Given an article title and body, respond with " +
	`a single JSON object {"metaDescription": string (max 160 chars), "keywords": [string], ` +
	`"seoScore": number between 0 and 100} and nothing else.`

// maxContentChars bounds the body excerpt sent to the API.
const maxContentChars = 4000

// Enricher implements ports.MetadataEnricher over a chat-completions API.
type Enricher struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.MetadataEnricher = (*Enricher)(nil)

// NewEnricher builds a client from configuration.
func NewEnricher(cfg config.SEOConfig) *Enricher {
	return &Enricher{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enrich requests metadata for one candidate. Failures are per-call; the
// caller decides whether to skip the item.
func (e *Enricher) Enrich(ctx context.Context, title, content string) (domain.SEOMetadata, error) {
	if e.apiKey == "" || e.endpoint == "" || e.model == "" {
		return domain.SEOMetadata{}, fmt.Errorf("seo client misconfigured")
	}

	if len(content) > maxContentChars {
		cut := maxContentChars
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}

	body, err := json.Marshal(map[string]any{
		"model": e.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("Title: %s\n\n%s", title, content)},
		},
	})
	if err != nil {
		return domain.SEOMetadata{}, fmt.Errorf("marshal seo payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SEOMetadata{}, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return domain.SEOMetadata{}, fmt.Errorf("call seo api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.SEOMetadata{}, fmt.Errorf("seo api %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.SEOMetadata{}, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return domain.SEOMetadata{}, fmt.Errorf("completion has no choices")
	}

	var meta struct {
		MetaDescription string   `json:"metaDescription"`
		Keywords        []string `json:"keywords"`
		SEOScore        float64  `json:"seoScore"`
	}
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &meta); err != nil {
		return domain.SEOMetadata{}, fmt.Errorf("decode metadata: %w", err)
	}

	return domain.SEOMetadata{
		MetaDescription: meta.MetaDescription,
		Keywords:        meta.Keywords,
		Score:           meta.SEOScore,
	}, nil
}
