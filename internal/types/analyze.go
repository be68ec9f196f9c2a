// Package types provides the wire request and response shapes of the
// analysis API.
package types

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/scinet/vault-analyzer/internal/analyze"
	"github.com/scinet/vault-analyzer/internal/scoring"
)

// Source types accepted by the summarize endpoint.
const (
	SourceText = "text"
	SourcePDF  = "pdf"
)

// SummaryOptions are the optional rendering knobs of a summarize request.
type SummaryOptions struct {
	SummaryStyle string `json:"summaryStyle,omitempty" validate:"omitempty,oneof=bullets paragraph"`
	MaxPoints    int    `json:"maxPoints,omitempty" validate:"omitempty,min=0"`
	MaxChars     int    `json:"maxChars,omitempty" validate:"omitempty,min=0"`
}

// Options converts the wire options to domain options; defaulting and
// clamping happen in the analyze package.
func (o SummaryOptions) Options() analyze.Options {
	return analyze.Options{
		Style:     o.SummaryStyle,
		MaxPoints: o.MaxPoints,
		MaxChars:  o.MaxChars,
	}
}

// AnalyzeRequest is the body of POST /api/analyze/summarize-base64.
type AnalyzeRequest struct {
	SourceType string         `json:"sourceType" validate:"required,oneof=text pdf"`
	Data       string         `json:"data" validate:"required"`
	Options    SummaryOptions `json:"options"`
}

// Validate checks the request shape and maps validator failures to the
// client-facing error taxonomy.
func (r *AnalyzeRequest) Validate() *analyze.Error {
	if err := validator.New().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].Field() {
			case "SourceType":
				return analyze.NewInvalidInput(`sourceType must be "pdf" or "text"`)
			case "Data":
				return analyze.NewInvalidInput("data must be a non-empty string")
			case "SummaryStyle":
				return analyze.NewInvalidInput(`summaryStyle must be "bullets" or "paragraph"`)
			}
		}
		return analyze.NewInvalidInput("invalid request")
	}
	return nil
}

// ScoreRequest is the body of POST /api/analyze/reproducibility-score.
type ScoreRequest struct {
	Manifest *scoring.ResearchManifest `json:"manifest"`
}

// Validate checks that a manifest object is present.
func (r *ScoreRequest) Validate() *analyze.Error {
	if r.Manifest == nil {
		return analyze.NewInvalidInput("manifest must be a valid object")
	}
	return nil
}

// SummarizeMeta describes what the summarize operation processed.
type SummarizeMeta struct {
	CharsProcessed int    `json:"charsProcessed"`
	SourceType     string `json:"sourceType"`
}

// SummarizeResponse is the success body of the summarize endpoint.
type SummarizeResponse struct {
	Summary         string        `json:"summary"`
	TokensEstimated int           `json:"tokensEstimated"`
	Meta            SummarizeMeta `json:"meta"`
}

// ScoreResponse is the success body of the scoring endpoint.
type ScoreResponse struct {
	scoring.ScoreResult
	CorrelationID string `json:"correlationId"`
}

// ErrorBody is the stable {code, message} pair returned on failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope. CorrelationID is set on scoring
// failures only, matching the public API contract.
type ErrorResponse struct {
	Error         ErrorBody `json:"error"`
	CorrelationID string    `json:"correlationId,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	OK bool `json:"ok"`
}
