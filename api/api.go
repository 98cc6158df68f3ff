// Package api provides the HTTP API server exposing the ask and search
// surface of the grounding pipeline to external UIs.
package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/rag"
)

// Server is the API server for querying the callscope system
type Server struct {
	config   Config
	pipeline *rag.Pipeline
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server. The pipeline is injected so the
// embedder, vector driver, and generation client are constructed once at
// process start and shared across requests.
func NewServer(config Config, pipeline *rag.Pipeline, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		pipeline: pipeline,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/search", s.handleSearchEndpoint)
	app.Post("/v1/ask", s.handleAskEndpoint)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
