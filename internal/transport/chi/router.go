package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/metrics"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	CORSEnabled bool
	Logger      *zap.Logger
}

// NewRouter mounts the server's routes behind the standard middleware chain:
// JSON panic recovery, request IDs, a canonical log line and metrics.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())

	r.Get("/", s.Index)
	r.Post("/ask", s.Ask)
	r.Post("/query", s.Ask)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	if static := s.Static(); static != nil {
		r.Handle("/static/*", static)
	}

	if opts.CORSEnabled {
		return cors.AllowAll().Handler(r)
	}
	return r
}
