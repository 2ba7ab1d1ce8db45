// Package server provides the HTTP API for FitScout.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/config"
	"github.com/hyperjump/fitscout/internal/search"
	"github.com/hyperjump/fitscout/internal/sizing"
	"github.com/hyperjump/fitscout/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP server for the FitScout API.
type Server struct {
	sizer  *sizing.Engine
	finder *search.Service
	store  catalog.Store
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	sizer *sizing.Engine,
	finder *search.Service,
	store catalog.Store,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	logger = utils.Named(logger, "server")
	return &Server{
		sizer:  sizer,
		finder: finder,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Handler builds the router with middleware and routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(recordMetrics)

	timeout := 30 * time.Second
	if s.config != nil && s.config.TimeoutSeconds > 0 {
		timeout = time.Duration(s.config.TimeoutSeconds) * time.Second
	}
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	var origins []string
	if s.config != nil {
		origins = s.config.CORSOrigins
	}
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
	}
	if s.config != nil && s.config.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.config.RateLimit, time.Minute))
	}

	r.Get("/v1/healthz", s.handleHealth)
	r.Post("/v1/size/suggest", s.handleSuggest)
	r.Post("/v1/find", s.handleFind)
	r.Get("/v1/brands", s.handleBrands)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
