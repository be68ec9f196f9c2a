package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/scinet/vault-analyzer/internal/analyze"
	"github.com/scinet/vault-analyzer/internal/ingestion"
	"github.com/scinet/vault-analyzer/internal/types"
)

// bodySlackBytes covers the JSON envelope around the base64 payload when
// sizing the request body limit.
const bodySlackBytes = 64 * 1024

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.HealthResponse{OK: true})
}

// handleSummarize runs the summarize pipeline: decode, validate, extract,
// summarize. Exactly one response is written per request.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.NewString()
	start := time.Now()
	log.Printf("[analyze] %s summarize start", correlationID)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	var req types.AnalyzeRequest
	if aerr := s.decodeBody(w, r, &req); aerr != nil {
		s.errorResponse(w, aerr, "")
		return
	}
	if aerr := req.Validate(); aerr != nil {
		s.errorResponse(w, aerr, "")
		return
	}

	var text string
	switch req.SourceType {
	case types.SourcePDF:
		buf, aerr := ingestion.DecodePDF(req.Data, s.cfg.MaxBase64SizeBytes)
		if aerr != nil {
			s.errorResponse(w, aerr, "")
			return
		}
		extracted, aerr := ingestion.ExtractPDFText(buf)
		if aerr != nil {
			s.errorResponse(w, aerr, "")
			return
		}
		text = extracted
	case types.SourceText:
		text = analyze.NormalizeWhitespace(req.Data)
		if text == "" {
			s.errorResponse(w, analyze.NewInvalidInput("text content is empty"), "")
			return
		}
	}

	opts := req.Options.Options().Clamped()
	text = truncateChars(text, opts.MaxChars)

	var result analyze.Result
	if s.summarizer == nil {
		result = analyze.FallbackSummarize(text, opts)
	} else {
		res, err := s.summarizer.Summarize(ctx, text, opts)
		if err != nil {
			aerr := analyze.AsError(err)
			log.Printf("[analyze] %s summarize failed via %s: %v", correlationID, s.summarizer.Name(), err)
			s.errorResponse(w, aerr, "")
			return
		}
		result = *res
	}

	log.Printf("[analyze] %s summarize done in %v (%d chars)", correlationID, time.Since(start), len(text))
	s.jsonResponse(w, http.StatusOK, types.SummarizeResponse{
		Summary:         result.Summary,
		TokensEstimated: result.TokensEstimated,
		Meta: types.SummarizeMeta{
			CharsProcessed: len(text),
			SourceType:     req.SourceType,
		},
	})
}

// handleScore evaluates a research manifest for reproducibility. Scoring
// always produces a result, so failures here are limited to bad requests.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.NewString()
	start := time.Now()
	log.Printf("[analyze] %s score start", correlationID)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	var req types.ScoreRequest
	if aerr := s.decodeBody(w, r, &req); aerr != nil {
		s.errorResponse(w, aerr, correlationID)
		return
	}
	if aerr := req.Validate(); aerr != nil {
		s.errorResponse(w, aerr, correlationID)
		return
	}

	result := s.scores.Score(ctx, req.Manifest)

	log.Printf("[analyze] %s score done in %v (provider %s, score %d)",
		correlationID, time.Since(start), result.Provider, result.Score)
	s.jsonResponse(w, http.StatusOK, types.ScoreResponse{
		ScoreResult:   *result,
		CorrelationID: correlationID,
	})
}

// decodeBody reads a size-capped JSON body into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) *analyze.Error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBase64SizeBytes*2+bodySlackBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return analyze.NewPayloadTooLarge("request body too large")
		}
		return analyze.NewInvalidInput("request body must be valid JSON")
	}
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes the error envelope. correlationID may be empty for
// endpoints that do not expose one on failure.
func (s *Server) errorResponse(w http.ResponseWriter, aerr *analyze.Error, correlationID string) {
	s.jsonResponse(w, aerr.Status, types.ErrorResponse{
		Error:         types.ErrorBody{Code: aerr.Code, Message: aerr.Message},
		CorrelationID: correlationID,
	})
}

// truncateChars caps text at max runes without splitting a multi-byte rune.
func truncateChars(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
