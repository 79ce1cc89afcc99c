// Package server provides the HTTP API of the ATS scorer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/types"
)

const (
	defaultAddr           = ":5000"
	defaultMaxUploadBytes = 2 << 20
	defaultReadTimeout    = 30 * time.Second
	defaultWriteTimeout   = 300 * time.Second
	idleTimeout           = 60 * time.Second
	shutdownTimeout       = 30 * time.Second
)

// Analyzer runs the résumé analysis flows.
type Analyzer interface {
	AnalyzeResume(ctx context.Context, text string) (types.ResumeAnalysis, error)
	Scan(ctx context.Context, resumeText, jobDescription string) (types.ScanResult, error)
}

// Config holds server configuration.
type Config struct {
	Addr           string        `mapstructure:"addr"`
	MaxUploadBytes int64         `mapstructure:"max-upload-bytes"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
}

// Server is the HTTP front end of the analyzer.
type Server struct {
	httpServer     *http.Server
	analyzer       Analyzer
	scorer         *scoring.Scorer
	logger         *zap.Logger
	maxUploadBytes int64
	readDocument   func([]byte) (string, error)
}

// New creates a server instance.
func New(cfg Config, analyzer Analyzer, scorer *scoring.Scorer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	s := &Server{
		analyzer:       analyzer,
		scorer:         scorer,
		logger:         log,
		maxUploadBytes: cfg.MaxUploadBytes,
		readDocument:   documentText,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/resume/upload", s.handleUpload)
	mux.HandleFunc("POST /api/resume/scan", s.handleScan)
	mux.HandleFunc("POST /api/resume/score", s.handleScore)

	return s.withRequestID(s.withLogging(withCORS(mux)))
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response failed", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.requestLogger(r).Error("request failed", zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]string{"error": publicMessage(err, fallback)})
}
