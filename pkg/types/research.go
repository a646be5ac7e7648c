// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across pipeline stages.
package types

import "time"

// ResearchFinding pairs a sub-topic with the paragraph researched for it.
// Findings are immutable once produced and keep the sub-topic order from
// decomposition.
type ResearchFinding struct {
	// SubTopic is the sub-topic the paragraph covers.
	SubTopic string `json:"sub_topic" yaml:"sub_topic"`

	// Paragraph is the researched text. Never empty.
	Paragraph string `json:"paragraph" yaml:"paragraph"`
}

// SkippedSubTopic records a sub-topic whose research call failed and was
// skipped. Skips are always surfaced to the caller, never dropped silently.
type SkippedSubTopic struct {
	// SubTopic is the sub-topic that was skipped.
	SubTopic string `json:"sub_topic" yaml:"sub_topic"`

	// Reason is the failure message from the generation call.
	Reason string `json:"reason" yaml:"reason"`
}

// ResearchDocument is the exportable record of one completed research run.
type ResearchDocument struct {
	// Topic is the research topic as supplied by the caller.
	Topic string `json:"topic" yaml:"topic"`

	// GeneratedAt is when the run completed.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Model is the generation model that produced the run.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// SubTopics lists the decomposed sub-topics in order.
	SubTopics []string `json:"sub_topics" yaml:"sub_topics"`

	// Findings holds one researched paragraph per surviving sub-topic,
	// in sub-topic order.
	Findings []ResearchFinding `json:"findings" yaml:"findings"`

	// Skipped lists sub-topics whose research failed.
	Skipped []SkippedSubTopic `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Report is the synthesized report text.
	Report string `json:"report" yaml:"report"`
}
