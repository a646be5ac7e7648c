// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline implements the three-stage research pipeline:
// decompose a topic into sub-topics, research each sub-topic, and
// summarize the findings into one report. The stages are pure functions
// over immutable data; all text generation goes through a single shared
// genai.Client supplied by the caller.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-team/internal/genai"
	"github.com/pdiddy/research-team/pkg/types"
)

// ProgressFunc receives progress events as the pipeline advances: once
// after each stage completes and once per finished sub-topic during
// research. A nil ProgressFunc disables progress reporting. The callback
// keeps the pipeline presentation-agnostic; the CLI passes one that
// writes to stderr.
type ProgressFunc func(stage Stage, detail string)

// emit invokes the callback if one is set.
func (p ProgressFunc) emit(stage Stage, detail string) {
	if p != nil {
		p(stage, detail)
	}
}

// Options configures a pipeline run.
type Options struct {
	// MaxSubtopics bounds the decomposition (default 5).
	MaxSubtopics int

	// Progress receives stage and sub-topic completion events. Optional.
	Progress ProgressFunc
}

// Result holds everything a run produced. Fields are filled in stage
// order, so a Result returned alongside an error still carries the
// partial results of the stages that completed.
type Result struct {
	// Topic is the research topic as supplied.
	Topic string

	// SubTopics is the ordered decomposition of the topic.
	SubTopics []string

	// Findings holds one paragraph per surviving sub-topic, in
	// sub-topic order.
	Findings []types.ResearchFinding

	// Skipped lists sub-topics whose research failed.
	Skipped []types.SkippedSubTopic

	// Report is the synthesized report. Empty until the summarize
	// stage succeeds.
	Report string
}

// Run executes the full pipeline for topic: decompose, research each
// sub-topic, summarize. Control flow is linear; a decompose or summarize
// failure aborts the run, research failures skip the affected sub-topic
// and continue. The returned Result is non-nil whenever at least one
// stage produced output, even on error.
func Run(ctx context.Context, client genai.Client, topic string, opts Options) (*Result, error) {
	subtopics, err := Decompose(ctx, client, topic, opts.MaxSubtopics)
	if err != nil {
		return nil, err
	}

	result := &Result{Topic: topic, SubTopics: subtopics}
	opts.Progress.emit(StageDecompose, pluralize(len(subtopics), "sub-topic"))

	findings, skipped, err := ResearchAll(ctx, client, topic, subtopics, opts.Progress)
	result.Skipped = skipped
	if err != nil {
		return result, err
	}
	result.Findings = findings
	opts.Progress.emit(StageResearch, pluralize(len(findings), "finding"))

	report, err := Summarize(ctx, client, topic, findings)
	if err != nil {
		return result, err
	}
	result.Report = report
	opts.Progress.emit(StageSummarize, "report ready")

	return result, nil
}

// pluralize formats a count with its noun: "1 finding", "3 findings".
func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
