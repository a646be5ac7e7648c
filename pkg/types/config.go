// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds shared settings for calls to the generative-language API.
type AIConfig struct {
	// Model is the generation model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API. Held for the session
	// only; never written to disk by the pipeline.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature controls sampling randomness (default 0.1).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the response length per call (default 2048).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxRetries is the number of retry attempts on rate-limited calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds each generation call (default 90s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PipelineConfig holds settings for a research pipeline run.
type PipelineConfig struct {
	AIConfig `yaml:",inline"`

	// MaxSubtopics is the upper bound on decomposed sub-topics (default 5).
	MaxSubtopics int `json:"max_subtopics" yaml:"max_subtopics"`
}

// ReportFormat selects the report artifact format.
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatJSON     ReportFormat = "json"
	FormatYAML     ReportFormat = "yaml"
)

// ReportConfig holds settings for writing report artifacts.
type ReportConfig struct {
	// OutputDir is the directory for report files (e.g. "output/reports/").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects the artifact format: markdown, json, or yaml.
	Format ReportFormat `json:"format" yaml:"format"`
}

// Config groups all configuration for the research-team CLI.
type Config struct {
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}
