// pkg/server/server.go

// Package server exposes the ingress pipeline over HTTP.
//
// Routes:
//
//	POST /api/query          → run an ad hoc source query through the pipeline
//	POST /api/upload/{tag}   → load an uploaded CSV/Excel file
//	POST /api/test-connection → verify a source descriptor
//	POST /api/source-tables  → introspect a source's catalog
//	GET  /api/tables         → list canonical load targets
//	GET  /health             → liveness probe
package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/config"
	"github.com/retailops/warehouse-ingress/pkg/ingress"
)

// Server wraps http.Server with the ingress routes.
type Server struct {
	cfg     *config.Config
	service *ingress.Service
	mux     *http.ServeMux
	http    *http.Server
	logger  *zap.Logger
}

// New constructs a Server with all routes registered.
func New(cfg *config.Config, service *ingress.Service) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		mux:     http.NewServeMux(),
		logger:  zap.L().Named("http"),
	}
	s.routes()
	s.http = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.corsMiddleware(s.loggingMiddleware(s.mux)),
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/query", s.handleQuery)
	s.mux.HandleFunc("/api/upload/", s.handleUpload)
	s.mux.HandleFunc("/api/test-connection", s.handleTestConnection)
	s.mux.HandleFunc("/api/source-tables", s.handleSourceTables)
	s.mux.HandleFunc("/api/tables", s.handleTables)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the server's root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.ListenAddr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
