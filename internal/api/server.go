// Package api provides the HTTP API exposing the color deriver.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/colorhash/internal/color"
	"github.com/listenupapp/colorhash/internal/http/response"
	"github.com/listenupapp/colorhash/internal/ratelimit"
)

// Options configures optional server behavior.
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty disables CORS headers.
	CORSOrigins []string
	// Limiter rate limits requests per client IP. Nil disables limiting.
	Limiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	deriver *color.Deriver
	router  *chi.Mux
	api     huma.API
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(deriver *color.Deriver, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		deriver: deriver,
		router:  chi.NewRouter(),
		limiter: opts.Limiter,
		logger:  logger,
	}

	s.setupMiddleware(opts)

	RegisterErrorHandler()
	s.api = humachi.New(s.router, huma.DefaultConfig("Color Hash API", "1.0.0"))

	s.registerHealthRoutes()
	s.registerColorRoutes()

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "no route for "+r.URL.Path, s.logger)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack. Must run before any route is registered.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)

	if len(opts.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	// Rate limiting keys on the connection peer, so it must run before
	// RealIP rewrites RemoteAddr from client-supplied headers.
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recoverer(s.logger))
}
