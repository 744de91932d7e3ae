package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/config"
	"github.com/LeviOP/wealthwise/internal/graph"
	"github.com/LeviOP/wealthwise/internal/http/handlers"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/middleware"
	"github.com/LeviOP/wealthwise/internal/service"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, svc *service.Service, gate *auth.Gate, logger *log.Logger) (*Server, error) {
	handler, err := NewHandler(cfg, svc, gate, logger)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}, nil
}

// NewHandler builds the routed handler with the full middleware chain.
func NewHandler(cfg config.Config, svc *service.Service, gate *auth.Gate, logger *log.Logger) (http.Handler, error) {
	schema, err := graph.New(svc, logger)
	if err != nil {
		return nil, fmt.Errorf("init graphql: %w", err)
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(svc).Register(mux)
	handlers.NewGraphQLHandler(schema).Register(mux)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, gate.Middleware(mux))), nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
