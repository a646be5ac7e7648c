// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-team CLI, the
// presentation surface over the three-stage research pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-team/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-team CLI.
var rootCmd = &cobra.Command{
	Use:   "research-team",
	Short: "A team of generation prompts that researches a topic",
	Long: `research-team runs a three-stage research pipeline against a
generative-language API: decompose a topic into sub-topics, research each
sub-topic independently, and synthesize the findings into one report.

The report is written as a Markdown, JSON, or YAML artifact. Progress for
each stage and sub-topic is printed to stderr as the pipeline advances.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-team.yaml or ~/.config/research-team/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-team")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-team"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_TEAM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
