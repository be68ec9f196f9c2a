// Package scoring computes reproducibility quality scores over a research
// submission's declared file manifest, via a deterministic heuristic rubric
// or a Gemini-assisted backend that emulates the same rubric.
package scoring

// FileEntry is one declared file in a submission manifest.
type FileEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size,omitempty"`
}

// ResearchManifest describes a submission: metadata plus its file list.
// Every field except Files is optional.
type ResearchManifest struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Type        string      `json:"type,omitempty"`
	Authors     []string    `json:"authors,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Files       []FileEntry `json:"files"`
}

// Provider names stamped on score results.
const (
	ProviderHeuristic = "heuristic"
	ProviderLLM       = "llm"
)

// Score categories, bucketed by threshold over the final score.
const (
	CategoryExcellent = "excellent"
	CategoryGood      = "good"
	CategoryFair      = "fair"
	CategoryPoor      = "poor"
)

// Category threshold ladder.
const (
	thresholdExcellent = 80
	thresholdGood      = 65
	thresholdFair      = 45
)

// ScoreResult is the outcome of a scoring run, regardless of backend.
// Score and Confidence are always clamped into [0,100].
type ScoreResult struct {
	Score           int            `json:"score"`
	Confidence      int            `json:"confidence"`
	Category        string         `json:"category"`
	Provider        string         `json:"provider"`
	Diagnostics     []string       `json:"diagnostics"`
	Recommendations []string       `json:"recommendations"`
	Strengths       []string       `json:"strengths"`
	Metadata        map[string]any `json:"metadata"`
}

// Categorize buckets a clamped score into its category.
func Categorize(score int) string {
	switch {
	case score >= thresholdExcellent:
		return CategoryExcellent
	case score >= thresholdGood:
		return CategoryGood
	case score >= thresholdFair:
		return CategoryFair
	default:
		return CategoryPoor
	}
}

// clamp forces v into [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
