// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "fmt"

// Stage identifies a pipeline stage in errors and progress events.
type Stage string

const (
	StageDecompose Stage = "decompose"
	StageResearch  Stage = "research"
	StageSummarize Stage = "summarize"
)

// GenerationError reports a failed or unusable generation call: network,
// auth, quota, or a response that parsed to nothing usable.
type GenerationError struct {
	// Stage is the pipeline stage where the call failed.
	Stage Stage

	// Err is the underlying cause.
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// InsufficientInputError reports that a stage received no usable input,
// e.g. no findings survived research so the summarizer must not run.
type InsufficientInputError struct {
	// Stage is the pipeline stage that could not proceed.
	Stage Stage

	// Reason describes what was missing.
	Reason string
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("%s: insufficient input: %s", e.Stage, e.Reason)
}
