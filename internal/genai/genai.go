// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai provides the generative-language API client shared by all
// pipeline stages. The pipeline depends only on the Client interface; the
// Gemini implementation lives here so tests can supply a mock.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/research-team/internal/httputil"
	"github.com/pdiddy/research-team/pkg/types"
)

// Client is the single text-generation capability the pipeline stages
// share. Implementations must be safe for concurrent use: the research
// stage fans out per-sub-topic calls over one client.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// geminiAPIBase is the generative-language API base URL. Package-level var
// for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

const (
	defaultModel     = "gemini-2.0-flash"
	defaultTimeout   = 90 * time.Second
	defaultMaxTokens = 2048
)

// GeminiClient calls the Google generative-language API. The zero value is
// not usable; construct with NewGeminiClient.
type GeminiClient struct {
	cfg    types.AIConfig
	client *http.Client
}

// NewGeminiClient builds a client from cfg, filling in defaults for
// missing fields. The API key is held in memory for the session only.
func NewGeminiClient(cfg types.AIConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// generateRequest is the request body for the generateContent endpoint.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateResponse is the response body from the generateContent endpoint.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Generate issues one generateContent request and returns the concatenated
// text of the first candidate. Rate-limited calls are retried with backoff
// before Generate gives up.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}, Role: "user"},
		},
		GenerationConfig: &generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiAPIBase, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling generative-language API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generative-language API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(gResp.Candidates) == 0 {
		return "", fmt.Errorf("generative-language API returned no candidates")
	}

	var b strings.Builder
	for _, p := range gResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("generative-language API returned empty text")
	}
	return text, nil
}
