package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scinet/vault-analyzer/internal/analyze"
	"github.com/scinet/vault-analyzer/internal/config"
	"github.com/scinet/vault-analyzer/internal/ingestion"
	"github.com/scinet/vault-analyzer/internal/llm"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a local text or PDF file",
	Long:  "Summarizes a document without starting the server. PDF files are detected by extension. Uses the configured LLM provider when available, otherwise the extractive fallback.",
	RunE:  runSummarize,
}

var (
	summarizeFile      string
	summarizeStyle     string
	summarizeMaxPoints int
	summarizeMaxChars  int
)

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeFile, "file", "f", "", "Path to the document (required)")
	summarizeCmd.Flags().StringVar(&summarizeStyle, "style", "bullets", "Summary style: bullets or paragraph")
	summarizeCmd.Flags().IntVar(&summarizeMaxPoints, "max-points", 0, "Maximum bullet points")
	summarizeCmd.Flags().IntVar(&summarizeMaxChars, "max-chars", 0, "Maximum characters to process")

	if err := summarizeCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(_ *cobra.Command, _ []string) error {
	if summarizeStyle != analyze.StyleBullets && summarizeStyle != analyze.StyleParagraph {
		return fmt.Errorf("style must be %q or %q, got %q", analyze.StyleBullets, analyze.StyleParagraph, summarizeStyle)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	raw, err := os.ReadFile(summarizeFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", summarizeFile, err)
	}

	var text string
	if strings.HasSuffix(strings.ToLower(summarizeFile), ".pdf") {
		extracted, aerr := ingestion.ExtractPDFText(raw)
		if aerr != nil {
			return fmt.Errorf("failed to extract PDF text: %s", aerr.Message)
		}
		text = extracted
	} else {
		text = analyze.NormalizeWhitespace(string(raw))
	}
	if text == "" {
		return fmt.Errorf("%s contains no text to summarize", summarizeFile)
	}

	opts := analyze.Options{
		Style:     summarizeStyle,
		MaxPoints: summarizeMaxPoints,
		MaxChars:  summarizeMaxChars,
	}.Clamped()
	if len(text) > opts.MaxChars {
		text = string([]rune(text)[:opts.MaxChars])
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	summarizer, err := llm.NewSummarizer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create summarization provider: %w", err)
	}

	var result analyze.Result
	if summarizer == nil {
		result = analyze.FallbackSummarize(text, opts)
	} else {
		res, err := summarizer.Summarize(ctx, text, opts)
		if err != nil {
			return fmt.Errorf("summarization via %s failed: %w", summarizer.Name(), err)
		}
		result = *res
	}

	fmt.Println(result.Summary)
	fmt.Fprintf(os.Stderr, "\n(%d chars processed, ~%d tokens)\n", len(text), result.TokensEstimated)
	return nil
}
