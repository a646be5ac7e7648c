// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/research-team/internal/genai"
)

const (
	minSubtopics     = 3
	defaultSubtopics = 5
)

// Decompose asks the model to break topic into focused sub-topics and
// returns them in response order. The topic must be non-empty; the check
// runs before any network call. maxSubtopics <= 0 defaults to 5.
//
// The model is trusted but not guaranteed to respect the requested count:
// responses with more lines are truncated to maxSubtopics, and a response
// with zero parseable lines is a generation failure.
func Decompose(ctx context.Context, client genai.Client, topic string, maxSubtopics int) ([]string, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic is empty: provide a research topic")
	}
	if maxSubtopics <= 0 {
		maxSubtopics = defaultSubtopics
	}

	prompt, err := renderPrompt(decomposePromptTmpl, decomposeData{
		Topic: topic,
		Min:   minSubtopics,
		Max:   maxSubtopics,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering decompose prompt: %w", err)
	}

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Stage: StageDecompose, Err: err}
	}

	subtopics := parseSubtopics(text, maxSubtopics)
	if len(subtopics) == 0 {
		return nil, &GenerationError{
			Stage: StageDecompose,
			Err:   fmt.Errorf("response contained no usable sub-topics"),
		}
	}
	return subtopics, nil
}

// parseSubtopics splits a response into sub-topic lines, dropping blank
// lines and leading enumeration markers, truncated to max.
func parseSubtopics(text string, max int) []string {
	var subtopics []string
	for _, line := range strings.Split(text, "\n") {
		s := stripEnumeration(strings.TrimSpace(line))
		if s == "" {
			continue
		}
		subtopics = append(subtopics, s)
		if len(subtopics) == max {
			break
		}
	}
	return subtopics
}

// stripEnumeration removes a leading enumeration marker: "1.", "2)",
// "-", "*", or "•". At most one marker is stripped; "1. 2. x" keeps the
// second marker as content.
func stripEnumeration(line string) string {
	// Bullet markers.
	for _, prefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}

	// Numeric markers: digits followed by "." or ")".
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}

	return line
}
