package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/eduplan/internal/narration"
	"github.com/jonathan/eduplan/internal/planner"
	"github.com/jonathan/eduplan/internal/rendering"
	"github.com/jonathan/eduplan/internal/server/middleware"
	"github.com/jonathan/eduplan/internal/server/ratelimit"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; the longest legitimate body is one section text
const maxBodyBytes = 1 << 20

// PDFPrinter turns printable HTML into a PDF
type PDFPrinter func(ctx context.Context, html string, timeout time.Duration, logger *zap.Logger) ([]byte, error)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	planner      *planner.Controller
	narrator     *narration.Narrator
	rateLimiter  *ratelimit.Limiter
	logger       *zap.Logger
	printPDF     PDFPrinter
	printTimeout time.Duration
	now          func() time.Time
}

// Config holds server configuration
type Config struct {
	Port         int
	CORSOrigin   string
	PrintTimeout time.Duration
	// RateLimit nil loads the EDUPLAN_RATE_LIMIT_* environment
	RateLimit *ratelimit.Config
}

// New creates a server over ctrl. narrator may be shared with ctrl so navigation stops playback.
func New(cfg Config, ctrl *planner.Controller, narrator *narration.Narrator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if narrator == nil {
		narrator = narration.NewNarrator(narration.NopSynthesizer{}, logger)
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	printTimeout := cfg.PrintTimeout
	if printTimeout <= 0 {
		printTimeout = rendering.DefaultPrintTimeout
	}

	s := &Server{
		planner:      ctrl,
		narrator:     narrator,
		rateLimiter:  ratelimit.NewLimiter(rateConfig),
		logger:       logger,
		printPDF:     rendering.PrintPDF,
		printTimeout: printTimeout,
		now:          time.Now,
	}

	handler := middleware.RequestID(
		middleware.Recover(logger)(
			middleware.Logging(logger)(
				s.withRateLimit(
					middleware.CORS(cfg.CORSOrigin)(s.routes())))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // whole-plan drafts and PDF printing are slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /catalog/{methodology}", s.handleCatalog)

	// Plan state
	mux.HandleFunc("GET /plan", s.handleGetPlan)
	mux.HandleFunc("PUT /plan/methodology", s.handleSetMethodology)
	mux.HandleFunc("PUT /plan/view", s.handleSetView)
	mux.HandleFunc("POST /plan/view/toggle", s.handleToggleView)
	mux.HandleFunc("PUT /plan/selection", s.handleSelectSection)
	mux.HandleFunc("DELETE /plan/selection", s.handleClearSelection)

	// Editing
	mux.HandleFunc("PUT /plan/idea", s.handleSetIdea)
	mux.HandleFunc("PUT /plan/profile/{field}", s.handleSetProfileField)
	mux.HandleFunc("PUT /plan/sections/{id}", s.handleSetSection)

	// Assisted drafting
	mux.HandleFunc("POST /plan/idea/refine", s.handleRefineIdea)
	mux.HandleFunc("POST /plan/profile/{field}/fill", s.handleFillField)
	mux.HandleFunc("POST /plan/profile/fill-empty", s.handleFillEmptyFields)
	mux.HandleFunc("POST /plan/fill", s.handleFillPlan)

	// Final document
	mux.HandleFunc("GET /plan/export", s.handleExport)
	mux.HandleFunc("GET /plan/document", s.handleDocument)
	mux.HandleFunc("GET /plan/document.pdf", s.handleDocumentPDF)

	// Narration
	mux.HandleFunc("GET /plan/narration", s.handleNarrationStatus)
	mux.HandleFunc("POST /plan/narration/start", s.handleNarrationStart)
	mux.HandleFunc("POST /plan/narration/toggle", s.handleNarrationToggle)
	mux.HandleFunc("POST /plan/narration/stop", s.handleNarrationStop)

	return mux
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is done, then shuts down gracefully
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	s.narrator.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes err as a JSON error with the status HTTPStatus assigns it
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request error",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]string{"error": err.Error()})
}

// validatable is a request body that checks itself
type validatable interface {
	Validate() error
}

// decodeRequest reads a JSON body into req and validates it
func decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// extractClientID returns the client IP from RemoteAddr. Forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
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
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Info("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", s.extractClientID(r)),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
