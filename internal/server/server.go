// Package server provides the HTTP REST API for the career coach.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/builder"
	"github.com/jonathan/career-coach/internal/career"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/types"
)

// ProfileService handles onboarding and insights
type ProfileService interface {
	UpdateProfile(ctx context.Context, identity *types.Identity, req *types.OnboardingRequest) (*career.ProfileResult, error)
	OnboardingStatus(ctx context.Context, identity *types.Identity) (*types.OnboardingStatus, error)
	Insight(ctx context.Context, identity *types.Identity) (*types.IndustryInsight, error)
}

// ResumeService loads and saves the user's resume
type ResumeService interface {
	Save(ctx context.Context, identity *types.Identity, content string) (*db.Resume, error)
	Get(ctx context.Context, identity *types.Identity) (*db.Resume, error)
}

// CoverLetterService manages the user's cover letters
type CoverLetterService interface {
	Create(ctx context.Context, identity *types.Identity, req *types.CreateCoverLetterRequest) (*db.CoverLetter, error)
	List(ctx context.Context, identity *types.Identity) ([]db.CoverLetter, error)
	Get(ctx context.Context, identity *types.Identity, id uuid.UUID) (*db.CoverLetter, error)
	Update(ctx context.Context, identity *types.Identity, id uuid.UUID, content string) (*db.CoverLetter, error)
	Delete(ctx context.Context, identity *types.Identity, id uuid.UUID) error
}

// BuilderSessions hands out the caller's builder session
type BuilderSessions interface {
	Session(ctx context.Context, identity *types.Identity) (*builder.Session, error)
}

// Services are the collaborators the handlers call into
type Services struct {
	Profiles     ProfileService
	Resumes      ResumeService
	CoverLetters CoverLetterService
	Builder      BuilderSessions
}

// Config holds server configuration
type Config struct {
	Port      int
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	services    Services
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	onShutdown  []func()
}

// New creates a new server instance
func New(cfg Config, services Services) (*Server, error) {
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT configuration is required")
	}
	if services.Profiles == nil || services.Resumes == nil || services.CoverLetters == nil || services.Builder == nil {
		return nil, fmt.Errorf("all services are required")
	}

	s := &Server{
		services:    services,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:  NewJWTService(cfg.JWT),
	}

	// Everything but /health requires a verified identity.
	api := http.NewServeMux()
	api.HandleFunc("GET /onboarding/status", s.handleOnboardingStatus)
	api.HandleFunc("POST /onboarding", s.handleOnboarding)
	api.HandleFunc("GET /insights", s.handleGetInsight)

	api.HandleFunc("GET /resume", s.handleGetResume)
	api.HandleFunc("PUT /resume", s.handleSaveResume)
	api.HandleFunc("POST /resume/markdown", s.handleCombineMarkdown)

	api.HandleFunc("GET /builder", s.handleGetBuilder)
	api.HandleFunc("PUT /builder/sections", s.handleUpdateSections)
	api.HandleFunc("PUT /builder/markdown", s.handleEditMarkdown)
	api.HandleFunc("POST /builder/reset", s.handleResetBuilder)
	api.HandleFunc("POST /builder/save", s.handleSaveBuilder)
	api.HandleFunc("POST /builder/export", s.handleExport)
	api.HandleFunc("POST /builder/export/stream", s.handleExportStream)

	api.HandleFunc("GET /cover-letters", s.handleListCoverLetters)
	api.HandleFunc("POST /cover-letters", s.handleCreateCoverLetter)
	api.HandleFunc("GET /cover-letters/{id}", s.handleGetCoverLetter)
	api.HandleFunc("PUT /cover-letters/{id}", s.handleUpdateCoverLetter)
	api.HandleFunc("DELETE /cover-letters/{id}", s.handleDeleteCoverLetter)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/", middleware.AuthMiddleware(s.jwtService)(api))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // headless capture can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// OnShutdown registers fn to run after the HTTP server has stopped.
func (s *Server) OnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.shutdownHooks()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.shutdownHooks()
	log.Println("Server stopped")
	return nil
}

func (s *Server) shutdownHooks() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, fn := range s.onShutdown {
		fn()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Page-Count")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
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

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service error to its status. Server-side failures are
// logged and their details kept out of the response.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID returns the caller's IP from RemoteAddr. X-Forwarded-For is
// ignored since it can be spoofed without a trusted proxy in front.
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
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
