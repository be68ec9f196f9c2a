package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scinet/vault-analyzer/internal/llm"
	"github.com/scinet/vault-analyzer/internal/schemas"
)

// defaultLLMConfidence is assumed when the model omits its own confidence.
const defaultLLMConfidence = 75

// LLMScorer asks a model to emulate the reproducibility rubric and return
// structured JSON. Transport, parse and schema failures all propagate as
// errors so the facade can fall back to the heuristic backend.
type LLMScorer struct {
	gen llm.JSONGenerator
}

// NewLLMScorer wraps a JSON-generating model client.
func NewLLMScorer(gen llm.JSONGenerator) *LLMScorer {
	return &LLMScorer{gen: gen}
}

// Name returns the provider tag stamped on results.
func (s *LLMScorer) Name() string {
	return ProviderLLM
}

// scoreContext is the structured view of a manifest sent to the model.
type scoreContext struct {
	Title       string
	Description string
	Authors     []string
	Category    string
	Type        string
	Tags        []string
	Files       []contextFile
}

type contextFile struct {
	Name string
	Size int64
	Type string
}

func buildScoreContext(m *ResearchManifest) scoreContext {
	sc := scoreContext{
		Title:       m.Title,
		Description: m.Description,
		Authors:     m.Authors,
		Category:    m.Category,
		Type:        m.Type,
		Tags:        m.Tags,
	}
	if sc.Title == "" {
		sc.Title = "Untitled Research"
	}
	if sc.Description == "" {
		sc.Description = "No description provided"
	}
	if sc.Category == "" {
		sc.Category = "Unknown"
	}
	if sc.Type == "" {
		sc.Type = "paper"
	}
	for _, f := range m.Files {
		name := f.Name
		if name == "" {
			name = "unnamed"
		}
		sc.Files = append(sc.Files, contextFile{
			Name: name,
			Size: f.Size,
			Type: InferFileType(name),
		})
	}
	return sc
}

// buildScorePrompt instructs the model to score 0-100 against the named
// criteria and answer in the exact JSON shape the parser expects.
func buildScorePrompt(sc scoreContext) string {
	var files strings.Builder
	for _, f := range sc.Files {
		fmt.Fprintf(&files, "- %s (%d bytes, type: %s)\n", f.Name, f.Size, f.Type)
	}
	if files.Len() == 0 {
		files.WriteString("(none)\n")
	}

	return fmt.Sprintf(`You are an expert in research reproducibility assessment. Analyze this research submission and provide a reproducibility score (0-100) with detailed diagnostics.

Research Details:
- Title: %s
- Description: %s
- Category: %s
- Type: %s
- Authors: %s
- Tags: %s

Files Included:
%s
Evaluate based on:
1. Documentation Quality (README, clear descriptions)
2. Code/Data Availability (source files, datasets)
3. Environment Specification (dependencies, requirements files)
4. Testing & Validation (test files, validation scripts)
5. Licensing & Legal (proper licensing)
6. Metadata Completeness (authors, descriptions, tags)
7. File Organization (logical structure)
8. Version Control Indicators (git files, changelog)

Respond in this exact JSON format:
{
  "score": [0-100 integer],
  "confidence": [0-100 integer],
  "category": "excellent|good|fair|poor",
  "diagnostics": ["specific finding 1", "specific finding 2"],
  "recommendations": ["actionable improvement 1", "actionable improvement 2"],
  "strengths": ["positive aspect 1", "positive aspect 2"]
}`,
		sc.Title, sc.Description, sc.Category, sc.Type,
		joinOrNone(sc.Authors), joinOrNone(sc.Tags), files.String())
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

// scoreReply mirrors the JSON shape the prompt demands.
type scoreReply struct {
	Score           float64  `json:"score"`
	Confidence      *float64 `json:"confidence"`
	Category        string   `json:"category"`
	Diagnostics     []string `json:"diagnostics"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
}

// Score runs one model call and parses the reply. No retries: a failed
// attempt propagates so the facade can run the heuristic once.
func (s *LLMScorer) Score(ctx context.Context, m *ResearchManifest) (*ScoreResult, error) {
	sc := buildScoreContext(m)

	raw, err := s.gen.GenerateJSON(ctx, buildScorePrompt(sc))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty response from scoring model")
	}

	result, err := parseScoreReply(raw)
	if err != nil {
		return nil, err
	}
	result.Metadata = llmMetadata(sc)
	return result, nil
}

// parseScoreReply locates the first balanced JSON object in the reply
// (tolerating surrounding prose), validates it against the response schema,
// then sanitizes numeric fields by clamping into their valid ranges.
func parseScoreReply(raw string) (*ScoreResult, error) {
	obj, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scoring response: %w", err)
	}

	if err := schemas.ValidateJSONString(schemas.ScoreResponseSchema, obj); err != nil {
		return nil, fmt.Errorf("scoring response failed schema validation: %w", err)
	}

	var reply scoreReply
	if err := json.Unmarshal([]byte(obj), &reply); err != nil {
		return nil, fmt.Errorf("failed to decode scoring response: %w", err)
	}

	confidence := defaultLLMConfidence
	if reply.Confidence != nil {
		confidence = clamp(int(*reply.Confidence), 0, 100)
	}

	category := reply.Category
	if category == "" {
		category = "unknown"
	}

	diagnostics := reply.Diagnostics
	if diagnostics == nil {
		diagnostics = []string{"Model analysis completed"}
	}

	return &ScoreResult{
		Score:           clamp(int(reply.Score), 0, 100),
		Confidence:      confidence,
		Category:        category,
		Provider:        ProviderLLM,
		Diagnostics:     diagnostics,
		Recommendations: emptyIfNil(reply.Recommendations),
		Strengths:       emptyIfNil(reply.Strengths),
	}, nil
}

func llmMetadata(sc scoreContext) map[string]any {
	hasType := func(t string) bool {
		for _, f := range sc.Files {
			if f.Type == t {
				return true
			}
		}
		return false
	}
	return map[string]any{
		"fileCount":        len(sc.Files),
		"hasDocumentation": hasType(FileTypeDocumentation),
		"hasCode":          hasType(FileTypeCode),
		"hasData":          hasType(FileTypeData),
		"category":         sc.Category,
		"type":             sc.Type,
	}
}
