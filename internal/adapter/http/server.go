package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AdvisoryLookup returns the latest published advisory for a station.
type AdvisoryLookup interface {
	Latest(station string) ([]byte, bool)
}

// Server exposes health, readiness, metrics and latest-advisory endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// /advisories/{station} routes. A nil lookup leaves the advisory route out.
func NewServer(addr string, ready sharedobs.ReadinessChecker, advisories AdvisoryLookup, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	if advisories != nil {
		mux.HandleFunc("GET /advisories/{station}", handleAdvisory(advisories))
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleAdvisory(advisories AdvisoryLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		station := strings.ToUpper(r.PathValue("station"))
		body, ok := advisories.Latest(station)
		if !ok {
			sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{
				"status": "not found",
				"error":  "no advisory for station " + station,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body) //nolint:errcheck // best-effort response
	}
}
