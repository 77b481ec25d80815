// Package server provides the HTTP API for the resume rewriter.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-rewriter/internal/auth"
	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/pipeline"
	"github.com/jonathan/resume-rewriter/internal/server/middleware"
	"github.com/jonathan/resume-rewriter/internal/server/ratelimit"
	"github.com/jonathan/resume-rewriter/internal/types"
)

const shutdownTimeout = 30 * time.Second

// Runner processes one rewrite request.
type Runner interface {
	Run(ctx context.Context, in pipeline.Input) (*types.FinalPayload, error)
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORSOrigins    []string
	// OnProgress receives lifecycle events for rewrite requests, from receipt onward.
	OnProgress pipeline.ProgressCallback
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	runner         Runner
	authorizer     auth.Authorizer
	rateLimiter    *ratelimit.Limiter
	log            *zap.Logger
	maxUploadBytes int64
	corsOrigins    map[string]bool
	allowAnyOrigin bool
	onProgress     pipeline.ProgressCallback
}

// New creates a new server instance. A nil limiter disables rate limiting.
func New(cfg Config, runner Runner, authorizer auth.Authorizer, limiter *ratelimit.Limiter, log *zap.Logger) *Server {
	s := &Server{
		runner:         runner,
		authorizer:     authorizer,
		rateLimiter:    limiter,
		log:            logger.OrNop(log),
		maxUploadBytes: cfg.MaxUploadBytes,
		corsOrigins:    make(map[string]bool, len(cfg.CORSOrigins)),
		onProgress:     cfg.OnProgress,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = 10 << 20
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			s.allowAnyOrigin = true
		}
		s.corsOrigins[origin] = true
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	rewrite := s.withTracker(middleware.Authorize(s.authorizer, s.denyResponse)(http.HandlerFunc(s.handleRewrite)))

	mux := http.NewServeMux()
	mux.Handle("POST /rewrite/{$}", rewrite)
	mux.Handle("POST /rewrite", rewrite)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.stopLimiter()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.stopLimiter()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) stopLimiter() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
