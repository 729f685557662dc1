// Package server provides the HTTP API for interview preparation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/logging"
	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/server/ratelimit"
	"github.com/jonathan/interview-prep/internal/types"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "InterviewPrepPro API"

// maxJSONBodyBytes bounds JSON request bodies.
const maxJSONBodyBytes = 2 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 30 * time.Second

// Interviewer is the interview logic behind the routes.
type Interviewer interface {
	PrepareContext(ctx context.Context, input types.SetupInput) (companyInfo, jobInfo string)
	GenerateQuestions(ctx context.Context, params interview.GenerateParams) (*types.QuestionSet, error)
	EvaluateAnswers(ctx context.Context, params interview.EvaluateParams) (*types.Evaluation, error)
	HasAPIKey() bool
	Provider() llm.Provider
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	service     Interviewer
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	handler     http.Handler
}

// Config holds server configuration
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimit defaults to ratelimit.DefaultSettings when nil.
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, service Interviewer, logger *zap.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logging.OrNop(logger),
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.NewConfig(ratelimit.DefaultSettings())
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/interview/test", s.handleTest)
	mux.HandleFunc("POST /api/interview/generate-questions", s.handleGenerateQuestions)
	mux.HandleFunc("POST /api/interview/evaluate-answers", s.handleEvaluateAnswers)
	mux.HandleFunc("GET /api/interview/health", s.handleHealth)
	mux.HandleFunc("POST /api/interview/resume/extract", s.handleResumeExtract)

	s.handler = s.withRateLimit(middleware.RequestID(s.withLogging(s.withCORS(mux))))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
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
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close stops background work without serving. Used by tests.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's limit with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request with its outcome.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
			zap.String(logging.FieldRequestID, middleware.RequestIDFrom(r.Context())),
		)
	})
}

// clientID identifies the caller by remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Too many requests",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes {"error": message}, plus "message" when detail is set.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]string{"error": message}
	if detail != "" {
		body["message"] = detail
	}
	s.jsonResponse(w, status, body)
}
