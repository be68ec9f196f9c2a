// Package config provides the process-wide configuration, read once from the
// environment at start-up and passed explicitly into each component.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted for LLM_PROVIDER and REPRO_SCORE_PROVIDER.
const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderHeuristic = "heuristic"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort           = 8787
	DefaultMaxBase64Bytes = 20_000_000
	DefaultRequestTimeout = 30 * time.Second
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultGeminiModel    = "gemini-1.5-flash"
)

// Config is immutable after Load; components receive it by value.
type Config struct {
	Port               int
	MaxBase64SizeBytes int64
	RequestTimeout     time.Duration

	// Summarization provider selection.
	LLMProvider string
	LLMModel    string
	LLMAPIKey   string

	// Reproducibility scoring provider selection.
	ScoreProvider string
	ScoreModel    string
	GeminiAPIKey  string
}

// Load reads configuration from the environment. A selected provider without
// an API key degrades to the no-provider / heuristic behavior instead of
// failing, so the process always starts.
func Load() (Config, error) {
	cfg := Config{
		Port:               DefaultPort,
		MaxBase64SizeBytes: DefaultMaxBase64Bytes,
		RequestTimeout:     DefaultRequestTimeout,
		LLMProvider:        ProviderNone,
		ScoreProvider:      ProviderHeuristic,
		ScoreModel:         DefaultGeminiModel,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("MAX_BASE64_SIZE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_BASE64_SIZE_BYTES %q", v)
		}
		cfg.MaxBase64SizeBytes = n
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS %q", v)
		}
		cfg.RequestTimeout = time.Duration(n) * time.Second
	}

	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")

	switch p := strings.ToLower(os.Getenv("LLM_PROVIDER")); p {
	case "", ProviderNone:
		cfg.LLMProvider = ProviderNone
	case ProviderOpenAI, ProviderGemini:
		if cfg.LLMAPIKey == "" {
			// Degrade to the deterministic fallback rather than crash.
			cfg.LLMProvider = ProviderNone
		} else {
			cfg.LLMProvider = p
		}
	default:
		return Config{}, fmt.Errorf("unsupported LLM_PROVIDER %q", p)
	}

	cfg.LLMModel = os.Getenv("LLM_MODEL")
	if cfg.LLMModel == "" {
		switch cfg.LLMProvider {
		case ProviderOpenAI:
			cfg.LLMModel = DefaultOpenAIModel
		default:
			cfg.LLMModel = DefaultGeminiModel
		}
	}

	// GEMINI_API_KEY falls back to LLM_API_KEY, matching the service's
	// historical behavior.
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = cfg.LLMAPIKey
	}

	switch p := strings.ToLower(os.Getenv("REPRO_SCORE_PROVIDER")); p {
	case "", ProviderHeuristic:
		cfg.ScoreProvider = ProviderHeuristic
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			cfg.ScoreProvider = ProviderHeuristic
		} else {
			cfg.ScoreProvider = ProviderGemini
		}
	default:
		return Config{}, fmt.Errorf("unsupported REPRO_SCORE_PROVIDER %q", p)
	}

	if v := os.Getenv("REPRO_SCORE_MODEL"); v != "" {
		cfg.ScoreModel = v
	}

	return cfg, nil
}
