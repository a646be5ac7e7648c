// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-team/internal/pipeline"
	"github.com/pdiddy/research-team/pkg/types"
)

func testDocument() types.ResearchDocument {
	return types.ResearchDocument{
		Topic:       "Quantum Computing",
		GeneratedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Model:       "gemini-2.0-flash",
		SubTopics:   []string{"Qubits", "Entanglement"},
		Findings: []types.ResearchFinding{
			{SubTopic: "Qubits", Paragraph: "Qubits are two-level quantum systems."},
			{SubTopic: "Entanglement", Paragraph: "Entanglement correlates outcomes."},
		},
		Skipped: []types.SkippedSubTopic{
			{SubTopic: "Error Correction", Reason: "quota exceeded"},
		},
		Report: "Quantum computing synthesizes qubits and entanglement.",
	}
}

func TestNewDocument(t *testing.T) {
	result := &pipeline.Result{
		Topic:     "Quantum Computing",
		SubTopics: []string{"Qubits"},
		Findings: []types.ResearchFinding{
			{SubTopic: "Qubits", Paragraph: "A paragraph."},
		},
		Report: "The report.",
	}
	at := time.Date(2026, 8, 29, 15, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	doc := NewDocument(result, "gemini-2.0-flash", at)

	if doc.Topic != result.Topic || doc.Report != result.Report {
		t.Errorf("document fields diverge from result: %+v", doc)
	}
	if doc.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", doc.Model)
	}
	if doc.GeneratedAt.Location() != time.UTC {
		t.Errorf("timestamp not normalized to UTC: %v", doc.GeneratedAt)
	}
	if len(doc.Findings) != 1 {
		t.Errorf("findings = %v", doc.Findings)
	}
}

func TestRenderMarkdown(t *testing.T) {
	data, err := Render(testDocument(), types.FormatMarkdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Research Report: Quantum Computing",
		"1. Qubits",
		"2. Entanglement",
		"### Qubits",
		"Qubits are two-level quantum systems.",
		"## Skipped sub-topics",
		"- Error Correction: quota exceeded",
		"## Summary",
		"Quantum computing synthesizes qubits and entanglement.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownNoSkips(t *testing.T) {
	doc := testDocument()
	doc.Skipped = nil

	data, err := Render(doc, types.FormatMarkdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(data), "Skipped sub-topics") {
		t.Error("markdown shows a skipped section for a clean run")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := Render(testDocument(), types.FormatJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got types.ResearchDocument
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshaling rendered JSON: %v", err)
	}
	if got.Topic != "Quantum Computing" || len(got.Findings) != 2 || len(got.Skipped) != 1 {
		t.Errorf("round-tripped document = %+v", got)
	}
}

func TestRenderYAML(t *testing.T) {
	data, err := Render(testDocument(), types.FormatYAML)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got types.ResearchDocument
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshaling rendered YAML: %v", err)
	}
	if got.Topic != "Quantum Computing" || got.Report == "" {
		t.Errorf("round-tripped document = %+v", got)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(testDocument(), types.ReportFormat("pdf"))
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error = %v, want unsupported-format failure", err)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{OutputDir: dir, Format: types.FormatMarkdown}

	path, err := Write(cfg, testDocument())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	name := filepath.Base(path)
	if name != "research-quantum-computing-20260829-120000.md" {
		t.Errorf("artifact name = %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "# Research Report: Quantum Computing") {
		t.Error("artifact content missing report heading")
	}
}

func TestWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	cfg := types.ReportConfig{OutputDir: dir, Format: types.FormatJSON}

	path, err := Write(cfg, testDocument())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("artifact extension = %q, want .json", filepath.Ext(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact not written: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Quantum Computing", "quantum-computing"},
		{"AI in Healthcare!", "ai-in-healthcare"},
		{"  spaced   out  ", "spaced-out"},
		{"___", "topic"},
		{"", "topic"},
		{strings.Repeat("long topic ", 20), "long-topic-long-topic-long-topic-long-topic-long"},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			if got := slugify(tt.topic); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
