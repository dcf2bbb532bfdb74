// Package api exposes the prediction service over HTTP: snapshot loads,
// impact predictions, what-if sweeps, node queries, a visualization
// payload, GraphQL, health, and Prometheus metrics.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graphql"
	"github.com/dd0wney/gridcast/pkg/health"
	"github.com/dd0wney/gridcast/pkg/logging"
	"github.com/dd0wney/gridcast/pkg/metrics"
	"github.com/dd0wney/gridcast/pkg/service"
)

const version = "1.0.0"

// maxRequestBody bounds snapshot uploads. A full village capture is a few
// hundred kilobytes; anything past this is a caller bug.
const maxRequestBody = 8 << 20

// Server is the HTTP front of the prediction service
type Server struct {
	svc        *service.Service
	cfg        config.ServerConfig
	logger     logging.Logger
	registry   *metrics.Registry
	checker    *health.Checker
	gqlHandler *graphql.GraphQLHandler
	httpServer *http.Server
	startTime  time.Time
	done       chan struct{}
	stopOnce   sync.Once
}

// NewServer wires the service into an HTTP server. The metrics registry
// may be nil, which disables the middleware and the /metrics endpoint.
func NewServer(svc *service.Service, cfg config.ServerConfig, logger logging.Logger, registry *metrics.Registry) (*Server, error) {
	schema, err := graphql.GenerateSchema(svc)
	if err != nil {
		return nil, fmt.Errorf("generate graphql schema: %w", err)
	}

	s := &Server{
		svc:        svc,
		cfg:        cfg,
		logger:     logging.OrNop(logger),
		registry:   registry,
		checker:    health.NewChecker(),
		gqlHandler: graphql.NewGraphQLHandler(schema),
		startTime:  time.Now(),
		done:       make(chan struct{}),
	}
	s.registerHealthChecks()
	return s, nil
}

func (s *Server) registerHealthChecks() {
	graphState := func() (bool, int, int) {
		stats, err := s.svc.Stats()
		if err != nil {
			return false, 0, 0
		}
		return true, stats.Nodes, stats.Edges
	}
	capturedAt := func() (time.Time, bool) {
		info, ok := s.svc.SnapshotInfo()
		return info.CapturedAt, ok
	}

	s.checker.RegisterCheck("graph", health.GraphCheck(graphState))
	s.checker.RegisterCheck("snapshot_age", health.SnapshotAgeCheck(capturedAt, 24*time.Hour))
	s.checker.RegisterCheck("goroutines", health.GoroutineCheck(1000))
	s.checker.RegisterReadinessCheck("graph", health.GraphCheck(graphState))
	s.checker.RegisterLivenessCheck("alive", func() health.Check {
		return health.SimpleCheck("alive")
	})
}

// Handler builds the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.checker.HTTPHandler())
	mux.HandleFunc("/health/ready", s.checker.ReadinessHandler())
	mux.HandleFunc("/health/live", s.checker.LivenessHandler())
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	}

	// Prediction API
	mux.HandleFunc("/api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/v1/predict", s.handlePredict)
	mux.HandleFunc("/api/v1/whatif", s.handleWhatIf)
	mux.HandleFunc("/api/v1/visualization", s.handleVisualization)
	mux.HandleFunc("/api/v1/nodes", s.handleNodes)
	mux.HandleFunc("/api/v1/nodes/", s.handleNode) // /api/v1/nodes/{id}
	mux.HandleFunc("/api/v1/graph/stats", s.handleStats)

	// GraphQL endpoint
	mux.Handle("/graphql", s.gqlHandler)

	var handler http.Handler = mux
	if s.registry != nil {
		handler = s.metricsMiddleware(handler)
	}
	handler = s.bodySizeLimitMiddleware(handler, maxRequestBody)
	handler = s.loggingMiddleware(handler)
	handler = s.corsMiddleware(handler)
	handler = s.panicRecoveryMiddleware(handler)
	return handler
}

// Start runs the HTTP server until Shutdown or a listen error
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.logger.Info("🚀 gridcast API server starting", logging.String("addr", addr))
	s.logger.Info("endpoints",
		logging.String("health", "GET /health"),
		logging.String("metrics", "GET /metrics"),
		logging.String("snapshot", "POST /api/v1/snapshot"),
		logging.String("predict", "POST /api/v1/predict"),
		logging.String("whatif", "POST /api/v1/whatif"),
		logging.String("visualization", "POST /api/v1/visualization"),
		logging.String("nodes", "GET /api/v1/nodes"),
		logging.String("stats", "GET /api/v1/graph/stats"),
		logging.String("graphql", "POST /graphql"))

	// Timeouts keep slow clients from pinning handler goroutines
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout(),
		WriteTimeout: s.cfg.WriteTimeout(),
		IdleTimeout:  s.cfg.IdleTimeout(),
	}

	if s.registry != nil {
		go s.updateSystemMetrics()
	}

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the system metrics ticker and drains in-flight requests
// within the context deadline. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
