package scoring

import (
	"context"
	"log"
)

// Backend is the shared contract of the interchangeable scoring backends.
type Backend interface {
	Name() string
	Score(ctx context.Context, m *ResearchManifest) (*ScoreResult, error)
}

// Service runs the scoring state machine: attempt the LLM backend once when
// configured, fall through to the heuristic on any failure. The user never
// sees an LLM failure, only a provider tag of "heuristic" on the result.
type Service struct {
	llm       Backend
	heuristic *HeuristicScorer
}

// NewService builds the scoring facade. llm may be nil when no LLM scoring
// backend is configured.
func NewService(llm Backend) *Service {
	return &Service{
		llm:       llm,
		heuristic: NewHeuristicScorer(),
	}
}

// Score evaluates a manifest. It always produces a result.
func (s *Service) Score(ctx context.Context, m *ResearchManifest) *ScoreResult {
	if s.llm != nil {
		result, err := s.llm.Score(ctx, m)
		if err == nil {
			return result
		}
		log.Printf("[scoring] %s backend failed, falling back to heuristic: %v", s.llm.Name(), err)
	}
	return s.heuristic.Score(m)
}
