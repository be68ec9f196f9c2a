// Package llm provides provider-polymorphic clients for summarization and
// structured JSON generation. Concrete providers are selected once from
// configuration at start-up, never by runtime type inspection.
package llm

import (
	"context"
	"fmt"

	"github.com/scinet/vault-analyzer/internal/analyze"
	"github.com/scinet/vault-analyzer/internal/config"
)

// Summarizer is the single-method capability the orchestrator depends on.
type Summarizer interface {
	// Name returns the provider name for logging and response metadata.
	Name() string
	// Summarize produces a summary of normalized content. The call must
	// honor ctx cancellation so request deadlines cut the network call.
	Summarize(ctx context.Context, content string, opts analyze.Options) (*analyze.Result, error)
}

// JSONGenerator produces a single structured JSON reply for a prompt. The
// Gemini client implements it for the reproducibility scorer.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// NewSummarizer builds the configured summarization provider. A nil return
// with nil error means no provider is configured and the caller should use
// the deterministic fallback.
func NewSummarizer(ctx context.Context, cfg config.Config) (Summarizer, error) {
	switch cfg.LLMProvider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMModel)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unsupported summarization provider %q", cfg.LLMProvider)
	}
}
