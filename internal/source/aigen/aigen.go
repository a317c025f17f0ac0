// Package aigen produces draft articles through an OpenAI-compatible API.
// Generated drafts enter the pipeline unpublished and wait for review.
package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"NewsIngest/internal/config"
	"NewsIngest/internal/domain"
	"NewsIngest/internal/source"
)

const systemPrompt = "You write tech-news articles. Respond with a single JSON object " +
	`{"title": string, "content": string (HTML body), "tags": [string]} and nothing else.`

// Adapter asks the model for one article on the configured topic.
type Adapter struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	assembler  *source.Assembler
	logger     *slog.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter builds the generation client from API configuration.
func NewAdapter(cfg config.SEOConfig, assembler *source.Assembler, logger *slog.Logger) *Adapter {
	return &Adapter{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		assembler:  assembler,
		logger:     logger,
	}
}

// Type identifies the adapter inside the registry.
func (a *Adapter) Type() domain.SourceType {
	return domain.SourceAI
}

// Fetch generates one draft for the source's configured topic.
func (a *Adapter) Fetch(ctx context.Context, req source.Request) (source.Result, error) {
	var result source.Result

	topic := req.Source.Options["topic"]
	if topic == "" {
		return result, fmt.Errorf("source %s: no topic configured", req.Source.Name)
	}

	draft, err := a.generate(ctx, topic)
	if err != nil {
		return result, fmt.Errorf("source %s: %w", req.Source.Name, err)
	}

	raw := source.RawItem{
		Title:      draft.Title,
		Content:    draft.Content,
		Author:     "AI Staff Writer",
		Categories: draft.Tags,
	}

	candidate, status, err := a.assembler.Build(ctx, raw, domain.SourceAI, false)
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

type draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (a *Adapter) generate(ctx context.Context, topic string) (draft, error) {
	if a.apiKey == "" || a.endpoint == "" || a.model == "" {
		return draft{}, fmt.Errorf("generation client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": "Write an article about: " + topic},
		},
	})
	if err != nil {
		return draft{}, fmt.Errorf("marshal generation payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return draft{}, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return draft{}, fmt.Errorf("call generation api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return draft{}, fmt.Errorf("generation api %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return draft{}, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return draft{}, fmt.Errorf("completion has no choices")
	}

	var d draft
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &d); err != nil {
		return draft{}, fmt.Errorf("decode draft: %w", err)
	}
	if d.Title == "" {
		return draft{}, fmt.Errorf("draft has no title")
	}

	return d, nil
}
