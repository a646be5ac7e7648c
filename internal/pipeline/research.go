// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/research-team/internal/genai"
	"github.com/pdiddy/research-team/pkg/types"
)

// Research asks the model for one factual paragraph about subtopic in the
// context of topic. Each call is independent; no conversational state is
// shared between sub-topics.
func Research(ctx context.Context, client genai.Client, topic, subtopic string) (types.ResearchFinding, error) {
	if strings.TrimSpace(subtopic) == "" {
		return types.ResearchFinding{}, fmt.Errorf("sub-topic is empty")
	}

	prompt, err := renderPrompt(researchPromptTmpl, researchData{
		Topic:    topic,
		SubTopic: subtopic,
	})
	if err != nil {
		return types.ResearchFinding{}, fmt.Errorf("rendering research prompt: %w", err)
	}

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return types.ResearchFinding{}, &GenerationError{Stage: StageResearch, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return types.ResearchFinding{}, &GenerationError{
			Stage: StageResearch,
			Err:   fmt.Errorf("empty paragraph from model"),
		}
	}

	return types.ResearchFinding{SubTopic: subtopic, Paragraph: text}, nil
}

// ResearchAll fans the sub-topics out to concurrent Research calls and
// collects the findings back into sub-topic order. The calls have no data
// dependency on each other, so completion order does not matter; results
// are written to indexed slots to preserve the decomposition order.
//
// Policy: continue-on-error. A failed sub-topic is recorded in the skip
// list with its failure reason and the rest of the run proceeds. Only if
// every sub-topic fails does ResearchAll return InsufficientInputError.
func ResearchAll(ctx context.Context, client genai.Client, topic string, subtopics []string, progress ProgressFunc) ([]types.ResearchFinding, []types.SkippedSubTopic, error) {
	if len(subtopics) == 0 {
		return nil, nil, &InsufficientInputError{
			Stage:  StageResearch,
			Reason: "no sub-topics to research",
		}
	}

	type slot struct {
		index   int
		finding types.ResearchFinding
		err     error
	}

	ch := make(chan slot, len(subtopics))
	var wg sync.WaitGroup

	for i, st := range subtopics {
		wg.Add(1)
		go func(i int, st string) {
			defer wg.Done()
			finding, err := Research(ctx, client, topic, st)
			ch <- slot{index: i, finding: finding, err: err}
		}(i, st)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	// Findings and errors keyed by sub-topic index so the output order
	// matches the input order regardless of completion order.
	findings := make([]*types.ResearchFinding, len(subtopics))
	errs := make([]error, len(subtopics))

	for s := range ch {
		if s.err != nil {
			errs[s.index] = s.err
			progress.emit(StageResearch, fmt.Sprintf("skipped %q: %v", subtopics[s.index], s.err))
			continue
		}
		f := s.finding
		findings[s.index] = &f
		progress.emit(StageResearch, fmt.Sprintf("researched %q", f.SubTopic))
	}

	var ordered []types.ResearchFinding
	var skipped []types.SkippedSubTopic
	for i, st := range subtopics {
		if errs[i] != nil {
			skipped = append(skipped, types.SkippedSubTopic{
				SubTopic: st,
				Reason:   errs[i].Error(),
			})
			continue
		}
		ordered = append(ordered, *findings[i])
	}

	if len(ordered) == 0 {
		return nil, skipped, &InsufficientInputError{
			Stage:  StageResearch,
			Reason: fmt.Sprintf("all %d sub-topics failed", len(subtopics)),
		}
	}
	return ordered, skipped, nil
}
