// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/research-team/internal/genai"
	"github.com/pdiddy/research-team/pkg/types"
)

// Summarize synthesizes the findings into one report for the topic. An
// empty findings sequence is rejected before any network call; emitting a
// vacuous report would hide an upstream failure.
func Summarize(ctx context.Context, client genai.Client, topic string, findings []types.ResearchFinding) (string, error) {
	if len(findings) == 0 {
		return "", &InsufficientInputError{
			Stage:  StageSummarize,
			Reason: "no findings to summarize",
		}
	}

	prompt, err := renderPrompt(summaryPromptTmpl, summaryData{
		Topic:    topic,
		Findings: findings,
	})
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}

	report, err := client.Generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Stage: StageSummarize, Err: err}
	}
	if strings.TrimSpace(report) == "" {
		return "", &GenerationError{
			Stage: StageSummarize,
			Err:   fmt.Errorf("empty report from model"),
		}
	}
	return report, nil
}
