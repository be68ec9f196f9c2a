package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scinet/vault-analyzer/internal/config"
	"github.com/scinet/vault-analyzer/internal/llm"
	"github.com/scinet/vault-analyzer/internal/observability"
	"github.com/scinet/vault-analyzer/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a research manifest for reproducibility",
	Long:  "Evaluates a research manifest JSON file against the reproducibility rubric and prints the result. Uses the Gemini backend when configured, otherwise the deterministic heuristic.",
	RunE:  runScore,
}

var (
	scoreManifestFile string
	scorePretty       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreManifestFile, "manifest", "m", "", "Path to the manifest JSON file (required)")
	scoreCmd.Flags().BoolVar(&scorePretty, "pretty", false, "Print a human-readable report instead of JSON")

	if err := scoreCmd.MarkFlagRequired("manifest"); err != nil {
		panic(fmt.Sprintf("failed to mark manifest flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	raw, err := os.ReadFile(scoreManifestFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", scoreManifestFile, err)
	}

	var manifest scoring.ResearchManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	var backend scoring.Backend
	if cfg.ScoreProvider == config.ProviderGemini {
		gem, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ScoreModel)
		if err != nil {
			return fmt.Errorf("failed to create scoring provider: %w", err)
		}
		defer func() { _ = gem.Close() }()
		backend = scoring.NewLLMScorer(gem)
	}

	result := scoring.NewService(backend).Score(ctx, &manifest)

	if scorePretty {
		observability.NewPrinter(os.Stdout).PrintScoreResult(result)
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
