// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-team/internal/genai"
	"github.com/pdiddy/research-team/internal/pipeline"
	"github.com/pdiddy/research-team/internal/report"
	"github.com/pdiddy/research-team/internal/secrets"
	"github.com/pdiddy/research-team/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Run the full research pipeline for a topic",
	Long: `Research decomposes the topic into 3-5 sub-topics, researches each
sub-topic with an independent generation call, and synthesizes the findings
into one report. Sub-topics whose research fails are skipped and listed;
the run only aborts if decomposition fails, every sub-topic fails, or the
final synthesis fails.

The report artifact is written under --output-dir unless --stdout is set.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic required: research-team research \"your topic\"")
	}

	cfg := pipelineConfigFromFlags(cmd)
	if cfg.APIKey == "" {
		return fmt.Errorf("no API key: use --api-key, RESEARCH_TEAM_API_KEY, or .secrets/%s", secrets.GeminiKeyName)
	}

	// Abandon in-flight generation calls when the user aborts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := genai.NewGeminiClient(cfg.AIConfig)

	progress := func(stage pipeline.Stage, detail string) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, detail)
	}

	result, err := pipeline.Run(ctx, client, topic, pipeline.Options{
		MaxSubtopics: cfg.MaxSubtopics,
		Progress:     progress,
	})
	if err != nil {
		reportSkipped(result)
		var insufficient *pipeline.InsufficientInputError
		if errors.As(err, &insufficient) {
			return fmt.Errorf("research aborted: %w", err)
		}
		return err
	}
	reportSkipped(result)

	doc := report.NewDocument(result, cfg.Model, time.Now())
	rptCfg := reportConfigFromFlags(cmd)

	if stdout, _ := cmd.Flags().GetBool("stdout"); stdout {
		data, err := report.Render(doc, rptCfg.Format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	path, err := report.Write(rptCfg, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}

// reportSkipped lists skipped sub-topics on stderr. Skips must always be
// visible to the user, whether or not the run completed.
func reportSkipped(result *pipeline.Result) {
	if result == nil || len(result.Skipped) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d sub-topic(s) skipped:\n", len(result.Skipped))
	for _, s := range result.Skipped {
		fmt.Fprintf(os.Stderr, "  - %s: %s\n", s.SubTopic, s.Reason)
	}
}

// pipelineConfigFromFlags resolves pipeline settings: flag, then config
// file / environment, then default.
func pipelineConfigFromFlags(cmd *cobra.Command) types.PipelineConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("pipeline.model")
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	apiKey = secrets.ResolveAPIKey(loadedSecrets, apiKey)

	temperature, _ := cmd.Flags().GetFloat64("temperature")
	if !cmd.Flags().Changed("temperature") && viper.IsSet("pipeline.temperature") {
		temperature = viper.GetFloat64("pipeline.temperature")
	}

	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	if !cmd.Flags().Changed("max-tokens") && viper.IsSet("pipeline.max_tokens") {
		maxTokens = viper.GetInt("pipeline.max_tokens")
	}

	maxSubtopics, _ := cmd.Flags().GetInt("max-subtopics")
	if !cmd.Flags().Changed("max-subtopics") && viper.IsSet("pipeline.max_subtopics") {
		maxSubtopics = viper.GetInt("pipeline.max_subtopics")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if !cmd.Flags().Changed("timeout") && viper.IsSet("pipeline.timeout") {
		timeout = viper.GetDuration("pipeline.timeout")
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.PipelineConfig{
		AIConfig: types.AIConfig{
			Model:       model,
			APIKey:      apiKey,
			Temperature: temperature,
			MaxTokens:   maxTokens,
			MaxRetries:  maxRetries,
			Timeout:     timeout,
		},
		MaxSubtopics: maxSubtopics,
	}
}

// reportConfigFromFlags resolves report artifact settings.
func reportConfigFromFlags(cmd *cobra.Command) types.ReportConfig {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if !cmd.Flags().Changed("output-dir") && viper.IsSet("report.output_dir") {
		outputDir = viper.GetString("report.output_dir")
	}

	format, _ := cmd.Flags().GetString("format")
	if !cmd.Flags().Changed("format") && viper.IsSet("report.format") {
		format = viper.GetString("report.format")
	}

	return types.ReportConfig{
		OutputDir: outputDir,
		Format:    types.ReportFormat(format),
	}
}

func init() {
	researchCmd.Flags().String("model", "", "generation model identifier (default gemini-2.0-flash)")
	researchCmd.Flags().String("api-key", "", "generative-language API key")
	researchCmd.Flags().Float64("temperature", 0.1, "sampling temperature")
	researchCmd.Flags().Int("max-tokens", 2048, "response token cap per generation call")
	researchCmd.Flags().Int("max-subtopics", 5, "upper bound on decomposed sub-topics")
	researchCmd.Flags().Int("max-retries", 3, "retry attempts for rate-limited calls")
	researchCmd.Flags().Duration("timeout", 90*time.Second, "per-call timeout")
	researchCmd.Flags().String("format", "markdown", "report format: markdown, json, or yaml")
	researchCmd.Flags().String("output-dir", "output/reports", "directory for report artifacts")
	researchCmd.Flags().Bool("stdout", false, "print the report to stdout instead of writing a file")

	rootCmd.AddCommand(researchCmd)
}
