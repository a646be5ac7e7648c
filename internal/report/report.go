// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders completed pipeline runs into downloadable
// artifacts: Markdown for reading, JSON or YAML for machine use.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-team/internal/pipeline"
	"github.com/pdiddy/research-team/pkg/types"
)

// maxSlugLen bounds the topic slug used in artifact filenames.
const maxSlugLen = 48

// NewDocument converts a completed pipeline result into an exportable
// record stamped with the generation time and model.
func NewDocument(result *pipeline.Result, model string, generatedAt time.Time) types.ResearchDocument {
	return types.ResearchDocument{
		Topic:       result.Topic,
		GeneratedAt: generatedAt.UTC(),
		Model:       model,
		SubTopics:   result.SubTopics,
		Findings:    result.Findings,
		Skipped:     result.Skipped,
		Report:      result.Report,
	}
}

// Render serializes a document in the requested format.
func Render(doc types.ResearchDocument, format types.ReportFormat) ([]byte, error) {
	switch format {
	case types.FormatMarkdown, "":
		return []byte(renderMarkdown(doc)), nil
	case types.FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report JSON: %w", err)
		}
		return append(data, '\n'), nil
	case types.FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling report YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use markdown, json, or yaml", format)
	}
}

// Write renders the document and writes it under cfg.OutputDir as
// research-<slug>-<timestamp>.<ext>. It returns the written path.
func Write(cfg types.ReportConfig, doc types.ResearchDocument) (string, error) {
	data, err := Render(doc, cfg.Format)
	if err != nil {
		return "", err
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Join("output", "reports")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("research-%s-%s%s",
		slugify(doc.Topic),
		doc.GeneratedAt.Format("20060102-150405"),
		extension(cfg.Format),
	)
	path := filepath.Join(outDir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// renderMarkdown lays the document out as a readable Markdown report.
func renderMarkdown(doc types.ResearchDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Research Report: %s\n\n", doc.Topic)
	if !doc.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated %s", doc.GeneratedAt.Format(time.RFC3339))
		if doc.Model != "" {
			fmt.Fprintf(&b, " by %s", doc.Model)
		}
		b.WriteString("\n\n")
	}

	b.WriteString("## Sub-topics\n\n")
	for i, st := range doc.SubTopics {
		fmt.Fprintf(&b, "%d. %s\n", i+1, st)
	}
	b.WriteString("\n")

	b.WriteString("## Findings\n\n")
	for _, f := range doc.Findings {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", f.SubTopic, f.Paragraph)
	}

	if len(doc.Skipped) > 0 {
		b.WriteString("## Skipped sub-topics\n\n")
		for _, s := range doc.Skipped {
			fmt.Fprintf(&b, "- %s: %s\n", s.SubTopic, s.Reason)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Summary\n\n%s\n", doc.Report)
	return b.String()
}

// slugify converts a topic to a filename-safe slug: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, bounded length.
func slugify(topic string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(topic) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "topic"
	}
	return slug
}

// extension maps a report format to its file extension.
func extension(format types.ReportFormat) string {
	switch format {
	case types.FormatJSON:
		return ".json"
	case types.FormatYAML:
		return ".yaml"
	default:
		return ".md"
	}
}
