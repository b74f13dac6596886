// Package api exposes a read-only HTTP view of the ledger: accounts,
// commodities and transactions. Mutations stay on the CLI.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mkovacs/financ/internal/infrastructure/config"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

// Server is the HTTP API server.
type Server struct {
	config config.APIConfig
	engine *gin.Engine
	repo   storage.Repository
	logger *slog.Logger
}

// NewServer creates a new API server over the given repository.
func NewServer(cfg config.APIConfig, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		config: cfg,
		engine: engine,
		repo:   repo,
		logger: logger,
	}

	engine.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Content-Type"},
	}))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.GET("/accounts", s.handleAccounts)
		api.GET("/commodities", s.handleCommodities)
		api.GET("/transactions", s.handleTransactions)
	}
}

// Handler returns the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("starting API server", slog.String("addr", addr))
	return s.engine.Run(addr)
}
