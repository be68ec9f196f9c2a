// Package server provides the HTTP REST API for the vault analyzer.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scinet/vault-analyzer/internal/config"
	"github.com/scinet/vault-analyzer/internal/llm"
	"github.com/scinet/vault-analyzer/internal/scoring"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        config.Config
	summarizer llm.Summarizer
	scores     *scoring.Service
	closers    []io.Closer
}

// New creates a new server instance with providers built from configuration.
func New(cfg config.Config) (*Server, error) {
	ctx := context.Background()

	summarizer, err := llm.NewSummarizer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarization provider: %w", err)
	}
	if summarizer == nil {
		log.Printf("[server] no summarization provider configured, using extractive fallback")
	} else {
		log.Printf("[server] summarization provider: %s", summarizer.Name())
	}

	var scoreBackend scoring.Backend
	if cfg.ScoreProvider == config.ProviderGemini {
		gem, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ScoreModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create scoring provider: %w", err)
		}
		scoreBackend = scoring.NewLLMScorer(gem)
		log.Printf("[server] scoring provider: gemini (%s)", cfg.ScoreModel)
	} else {
		log.Printf("[server] scoring provider: heuristic")
	}

	s := newServer(cfg, summarizer, scoring.NewService(scoreBackend))

	if c, ok := summarizer.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	if c, ok := scoreBackend.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	return s, nil
}

// newServer wires routes and middleware around the given providers. Tests
// inject stub providers through this constructor.
func newServer(cfg config.Config, summarizer llm.Summarizer, scores *scoring.Service) *Server {
	s := &Server{
		cfg:        cfg,
		summarizer: summarizer,
		scores:     scores,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze/summarize-base64", s.handleSummarize)
	mux.HandleFunc("POST /api/analyze/reproducibility-score", s.handleScore)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  cfg.RequestTimeout + 5*time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until an interrupt or
// termination signal triggers graceful shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			log.Printf("[server] provider close error: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}
