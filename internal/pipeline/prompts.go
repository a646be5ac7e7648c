// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/research-team/pkg/types"
)

// decomposePromptTmpl asks the model to break a topic into focused
// sub-topics, one per line so the response parses without structure.
var decomposePromptTmpl = template.Must(template.New("decompose").Parse(`You are a research planner. Break the following research topic into {{.Min}} to {{.Max}} distinct, focused sub-topics that together cover the topic well.

Rules:
- Each sub-topic on its own line.
- No numbering, bullets, or commentary; sub-topic text only.
- Sub-topics must not overlap.

Research topic: {{.Topic}}
`))

// researchPromptTmpl asks for one factual paragraph about a sub-topic in
// the context of the original topic. Each sub-topic is researched in a
// fresh request with no shared conversational state.
var researchPromptTmpl = template.Must(template.New("research").Parse(`You are a research specialist. Write one detailed, factual paragraph about the following sub-topic, in the context of the broader research topic.

Rules:
- A single paragraph of prose, no headings or lists.
- Concrete facts over generalities.
- Stay within the sub-topic; the broader topic is context only.

Broader research topic: {{.Topic}}
Sub-topic: {{.SubTopic}}
`))

// summaryPromptTmpl concatenates all findings and asks for one cohesive
// report synthesizing them.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are a research synthesizer. Combine the findings below into a single cohesive, structured research report on the topic. Organize the report with a short introduction, one section per theme, and a conclusion. Do not invent findings that are not supported by the material below.

Research topic: {{.Topic}}

Findings:
{{range .Findings}}
## {{.SubTopic}}

{{.Paragraph}}
{{end}}`))

// renderPrompt executes a prompt template against its data.
func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decomposeData is the template payload for decomposePromptTmpl.
type decomposeData struct {
	Topic string
	Min   int
	Max   int
}

// researchData is the template payload for researchPromptTmpl.
type researchData struct {
	Topic    string
	SubTopic string
}

// summaryData is the template payload for summaryPromptTmpl.
type summaryData struct {
	Topic    string
	Findings []types.ResearchFinding
}
