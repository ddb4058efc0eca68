package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"
	// PathHealth is the path for health check.
	PathHealth = "/health"
)

// CheckFunc reports the health of one dependency.
type CheckFunc func(ctx context.Context) error

// Server exposes metrics and health over HTTP.
type Server struct {
	svr *http.Server
}

// NewRouter builds the monitoring routes. database is checked on every
// request; discord periodically.
func NewRouter(database, discord CheckFunc) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)
	r.Handle(PathHealth, healthHandler(database, discord)).Methods(http.MethodGet)
	r.NotFoundHandler = NotFoundHandler()
	r.MethodNotAllowedHandler = MethodNotAllowedHandler()
	return r
}

func healthHandler(database, discord CheckFunc) http.Handler {
	opts := []health.CheckerOption{
		health.WithCacheDuration(1 * time.Second),
		health.WithTimeout(2 * time.Second),
	}
	if database != nil {
		opts = append(opts, health.WithCheck(health.Check{
			Name: "SQLite",
			Check: func(ctx context.Context) error {
				if err := database(ctx); err != nil {
					return fmt.Errorf("failed to ping SQLite: %w", err)
				}
				return nil
			},
			Timeout: 2 * time.Second,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				log.Printf("SQLite health check status changed: %s", state.Status)
			},
		}))
	}
	if discord != nil {
		opts = append(opts, health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "Discord_API",
			Check: func(ctx context.Context) error {
				if err := discord(ctx); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout: 3 * time.Second,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				log.Printf("Discord API health check status changed: %s", state.Status)
			},
		}))
	}
	return health.NewHandler(health.NewChecker(opts...))
}

// NewServer returns a monitoring server listening on port.
func NewServer(port string, database, discord CheckFunc) *Server {
	return &Server{svr: &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(database, discord),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start serves in the background.
func (s *Server) Start() {
	go func() {
		log.Printf("Starting monitoring server on %s", s.svr.Addr)
		if err := s.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Error starting monitoring server: %v", err)
			log.Println("Monitoring server will not be available")
		}
	}()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.svr.Shutdown(ctx)
}
