// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/research-team/pkg/types"
)

func testFindings() []types.ResearchFinding {
	return []types.ResearchFinding{
		{SubTopic: "Qubits", Paragraph: "Qubits are two-level quantum systems."},
		{SubTopic: "Entanglement", Paragraph: "Entanglement correlates measurement outcomes."},
	}
}

func TestSummarizePassThrough(t *testing.T) {
	// The core layer must hand the model's report through untouched.
	const report = "## Overview\n\nQuantum computing combines qubits and entanglement.\n"
	client := &mockClient{generate: func(string) (string, error) {
		return report, nil
	}}

	got, err := Summarize(context.Background(), client, "Quantum Computing", testFindings())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != report {
		t.Errorf("report corrupted:\ngot  %q\nwant %q", got, report)
	}
}

func TestSummarizePromptCarriesFindings(t *testing.T) {
	client := &mockClient{generate: func(string) (string, error) {
		return "report", nil
	}}

	if _, err := Summarize(context.Background(), client, "Quantum Computing", testFindings()); err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	prompts := client.recorded()
	if len(prompts) != 1 {
		t.Fatalf("got %d calls, want 1", len(prompts))
	}
	prompt := prompts[0]
	if !strings.Contains(prompt, "Quantum Computing") {
		t.Error("prompt missing the topic")
	}
	for _, f := range testFindings() {
		if !strings.Contains(prompt, f.SubTopic) || !strings.Contains(prompt, f.Paragraph) {
			t.Errorf("prompt missing finding %q", f.SubTopic)
		}
	}
}

func TestSummarizeEmptyFindings(t *testing.T) {
	client := &mockClient{}

	_, err := Summarize(context.Background(), client, "Quantum Computing", nil)
	var insufficient *InsufficientInputError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want *InsufficientInputError", err)
	}
	if insufficient.Stage != StageSummarize {
		t.Errorf("stage = %q, want summarize", insufficient.Stage)
	}
	if client.callCount() != 0 {
		t.Errorf("made %d network calls with no findings, want 0", client.callCount())
	}
}

func TestSummarizeEmptyResponse(t *testing.T) {
	client := &mockClient{generate: func(string) (string, error) {
		return "  \n", nil
	}}

	_, err := Summarize(context.Background(), client, "Quantum Computing", testFindings())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want *GenerationError", err)
	}
}

func TestSummarizeClientFailure(t *testing.T) {
	cause := fmt.Errorf("429 rate limited")
	client := &mockClient{generate: func(string) (string, error) {
		return "", cause
	}}

	_, err := Summarize(context.Background(), client, "Quantum Computing", testFindings())
	if !errors.Is(err, cause) {
		t.Errorf("error %v does not wrap the client failure", err)
	}
}
