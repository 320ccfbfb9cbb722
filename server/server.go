// Package server exposes the interval service over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/menmos/intervals-go/config"
	"github.com/menmos/intervals-go/service"
)

const (
	IntervalsPath = "/api/intervals"
	HealthPath    = "/api/health"
	DocsPath      = "/api-docs"
	MetricsPath   = "/metrics"

	ServiceName = "interval-processor"
	Version     = "1.0.0"

	readHeaderTimeout = 10 * time.Second
)

// Server routes HTTP requests to a service.Service.
type Server struct {
	cfg     *config.ServerConfig
	svc     *service.Service
	log     *logrus.Logger
	metrics *metrics

	sizeLimit       int64
	shutdownTimeout time.Duration
	origins         atomic.Pointer[originSet]

	handler http.Handler
}

// New builds a server for cfg. The configuration is validated here so that Run
// can't fail on a bad setting halfway through startup.
func New(cfg *config.ServerConfig, svc *service.Service, log *logrus.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server configuration")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if svc == nil {
		svc = service.New(log)
	}

	sizeLimit, _ := cfg.RequestSizeLimitBytes()
	shutdownTimeout, _ := cfg.ShutdownTimeoutDuration()

	s := &Server{
		cfg:             cfg,
		svc:             svc,
		log:             log,
		sizeLimit:       sizeLimit,
		shutdownTimeout: shutdownTimeout,
	}
	s.origins.Store(newOriginSet(cfg.AllowedOrigins))
	if !cfg.DisableMetrics {
		s.metrics = newMetrics()
	}

	router := httprouter.New()
	router.HandleMethodNotAllowed = false
	router.POST(IntervalsPath, s.handleIntervals)
	router.GET(HealthPath, s.handleHealth)
	router.GET(DocsPath, s.handleDocs)
	if s.metrics != nil {
		router.Handler(http.MethodGet, MetricsPath, s.metrics.handler())
	}
	router.NotFound = http.HandlerFunc(s.handleNotFound)
	router.PanicHandler = s.handlePanic

	s.handler = s.logRequests(s.cors(s.limitBody(router)))
	return s, nil
}

// Handler returns the root handler, including CORS, size limiting and logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Reload applies the settings that can change without a restart: log level,
// log format and allowed origins.
func (s *Server) Reload(cfg *config.ServerConfig) {
	if err := ConfigureLogger(s.log, cfg); err != nil {
		s.log.WithError(err).Warn("ignoring invalid logging configuration")
	}
	s.origins.Store(newOriginSet(cfg.AllowedOrigins))
	s.log.WithField("allowed_origins", cfg.AllowedOrigins).Info("configuration reloaded")
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.cfg.Addr())
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is cancelled, then shuts down gracefully,
// giving in-flight requests up to the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	_, port, _ := net.SplitHostPort(l.Addr().String())
	s.log.Infof("Server started: http://localhost:%s", port)
	s.log.Infof("Documentation: http://localhost:%s%s", port, DocsPath)
	s.log.Infof("Health check: http://localhost:%s%s", port, HealthPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "graceful shutdown failed")
		}
		return nil
	})

	return g.Wait()
}
