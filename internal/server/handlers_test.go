package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scinet/vault-analyzer/internal/analyze"
	"github.com/scinet/vault-analyzer/internal/config"
	"github.com/scinet/vault-analyzer/internal/scoring"
	"github.com/scinet/vault-analyzer/internal/types"
)

// cannedSummarizer returns a fixed result, standing in for a configured
// provider.
type cannedSummarizer struct {
	result *analyze.Result
	err    error
}

func (c *cannedSummarizer) Name() string { return "canned" }

func (c *cannedSummarizer) Summarize(_ context.Context, _ string, _ analyze.Options) (*analyze.Result, error) {
	return c.result, c.err
}

// stalledSummarizer blocks until the request deadline fires.
type stalledSummarizer struct{}

func (stalledSummarizer) Name() string { return "stalled" }

func (stalledSummarizer) Summarize(ctx context.Context, _ string, _ analyze.Options) (*analyze.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func testConfig() config.Config {
	return config.Config{
		Port:               0,
		MaxBase64SizeBytes: config.DefaultMaxBase64Bytes,
		RequestTimeout:     5 * time.Second,
	}
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
}

func TestSummarize_RejectsMalformedJSON(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, analyze.CodeInvalidInput, decodeError(t, rec).Error.Code)
}

func TestSummarize_RejectsUnknownSourceType(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"docx","data":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, analyze.CodeInvalidInput, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "sourceType")
}

func TestSummarize_RejectsMissingData(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"text","data":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "data")
}

func TestSummarize_RejectsWhitespaceOnlyText(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"text","data":"   \t\n  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, analyze.CodeInvalidInput, decodeError(t, rec).Error.Code)
}

func TestSummarize_TextFallbackBullets(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	body, _ := json.Marshal(types.AnalyzeRequest{
		SourceType: types.SourceText,
		Data: "Reproducible research requires careful packaging. Analysts share code and data openly. " +
			"Environment files pin dependency versions. Tests verify the published results. " +
			"Documentation explains each processing step.",
	})
	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.SummarizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Summary, "- "), "bullets style prefixes each line")
	assert.Greater(t, resp.TokensEstimated, 0)
	assert.Equal(t, types.SourceText, resp.Meta.SourceType)
	assert.Greater(t, resp.Meta.CharsProcessed, 0)
}

func TestSummarize_ParagraphStyle(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"text","data":"One sentence here. Another sentence there. A third one closes.","options":{"summaryStyle":"paragraph"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.SummarizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Summary, "- ")
	assert.NotEmpty(t, resp.Summary)
}

func TestSummarize_ConfiguredProviderWins(t *testing.T) {
	summarizer := &cannedSummarizer{result: &analyze.Result{Summary: "- provider summary", TokensEstimated: 12}}
	s := newServer(testConfig(), summarizer, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"text","data":"Some content to summarize here."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.SummarizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "- provider summary", resp.Summary)
	assert.Equal(t, 12, resp.TokensEstimated)
}

func TestSummarize_ConfiguredProviderFailureSurfaces(t *testing.T) {
	summarizer := &cannedSummarizer{err: errors.New("quota exceeded")}
	s := newServer(testConfig(), summarizer, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"text","data":"Some content to summarize here."}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, analyze.CodeInternalError, decodeError(t, rec).Error.Code)
}

func TestSummarize_TimeoutMapsToGatewayTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	s := newServer(cfg, stalledSummarizer{}, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"text","data":"Some content to summarize here."}`)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, analyze.CodeTimeout, decodeError(t, rec).Error.Code)
}

func TestSummarize_PDFWithoutHeaderRejected(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	// "ABCD" is valid base64 but decodes to bytes with no PDF header.
	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"pdf","data":"ABCD"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, analyze.CodeInvalidInput, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "PDF header")
}

func TestSummarize_InvalidBase64Rejected(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"pdf","data":"!!!not-base64!!!"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, analyze.CodeInvalidInput, decodeError(t, rec).Error.Code)
}

func TestSummarize_OversizedPayloadRejected(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBase64SizeBytes = 100
	s := newServer(cfg, nil, scoring.NewService(nil))

	data := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 400)))
	rec := doJSON(t, s, http.MethodPost, "/api/analyze/summarize-base64",
		`{"sourceType":"pdf","data":"`+data+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, analyze.CodePayloadTooLarge, decodeError(t, rec).Error.Code)
}

func TestScore_RejectsMissingManifest(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/reproducibility-score", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, analyze.CodeInvalidInput, resp.Error.Code)
	assert.NotEmpty(t, resp.CorrelationID, "scoring errors carry a correlation id")
}

func TestScore_BareManifestScoresPoor(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodPost, "/api/analyze/reproducibility-score",
		`{"manifest":{"title":"Lone Paper","files":[{"name":"paper.pdf"}]}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, scoring.CategoryPoor, resp.Category)
	assert.Equal(t, scoring.ProviderHeuristic, resp.Provider)
	assert.Contains(t, resp.Diagnostics, "Missing README.md")
	assert.NotEmpty(t, resp.CorrelationID)
}

func TestScore_CompleteManifestScoresExcellent(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	manifest := map[string]any{
		"manifest": map[string]any{
			"title":       "Deep Learning for Reproducible Protein Analysis",
			"description": strings.Repeat("A thorough methodology description with experiment details. ", 4),
			"authors":     []string{"A. One", "B. Two", "C. Three"},
			"category":    "biology",
			"tags":        []string{"ml", "proteins"},
			"files": []map[string]any{
				{"name": "README.md"},
				{"name": "LICENSE"},
				{"name": "environment.yml"},
				{"name": "Dockerfile"},
				{"name": "poetry.lock"},
				{"name": "test_pipeline.py"},
				{"name": "train.py"},
				{"name": "eval.py"},
				{"name": "model.py"},
				{"name": "data.csv"},
			},
		},
	}
	body, _ := json.Marshal(manifest)
	rec := doJSON(t, s, http.MethodPost, "/api/analyze/reproducibility-score", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, scoring.CategoryExcellent, resp.Category)
	assert.GreaterOrEqual(t, resp.Score, 80)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	s := newServer(testConfig(), nil, scoring.NewService(nil))

	rec := doJSON(t, s, http.MethodGet, "/api/analyze/summarize-base64", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
