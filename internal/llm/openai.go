package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/scinet/vault-analyzer/internal/analyze"
)

// OpenAIClient implements Summarizer via the Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed summarizer.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Summarize generates a summary using OpenAI's Chat Completions API. The
// token estimate covers combined input and output length, unlike the
// output-only estimate of the deterministic fallback.
func (c *OpenAIClient) Summarize(ctx context.Context, content string, opts analyze.Options) (*analyze.Result, error) {
	system, user := BuildSummaryPrompt(content, opts)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return nil, fmt.Errorf("empty LLM response")
	}

	return &analyze.Result{
		Summary:         summary,
		TokensEstimated: analyze.EstimateTokens(len(content) + len(summary)),
	}, nil
}
