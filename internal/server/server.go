package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/koios/plainly-mcp/internal/config"
	"github.com/koios/plainly-mcp/internal/prompts"
	"github.com/koios/plainly-mcp/internal/resources"
	"github.com/koios/plainly-mcp/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Identity advertised to MCP clients
const (
	Name    = "plainly-videos-pro"
	Version = "2.0.0"
)

// HealthCheck reports whether an optional dependency is reachable
type HealthCheck func(ctx context.Context) bool

// Server wires the registries into an MCP server
type Server struct {
	mcp    *mcp.Server
	logger *zap.Logger
	checks map[string]HealthCheck
}

// Option configures a Server
type Option func(*Server)

// WithHealthCheck adds a named dependency to the /health report
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// New creates a new MCP server exposing every tool, resource and prompt
func New(t *tools.Registry, r *resources.Registry, p *prompts.Registry, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		mcp:    mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil),
		logger: logger,
		checks: make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(s)
	}

	t.Register(s.mcp)
	r.Register(s.mcp)
	p.Register(s.mcp)
	s.mcp.AddReceivingMiddleware(routeUnmatched(t, r))

	logger.Info("MCP server assembled",
		zap.Int("tools", len(t.Tools())),
		zap.Int("resources", len(r.Resources())),
		zap.Int("resource_templates", len(r.Templates())),
		zap.Int("prompts", len(p.Prompts())))

	return s
}

// MCPServer returns the underlying MCP server
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves the configured transport until ctx is cancelled or the client disconnects
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	switch cfg.Transport {
	case config.TransportStdio:
		s.logger.Info("Serving MCP over stdio")
		return s.mcp.Run(ctx, &mcp.StdioTransport{})
	case config.TransportHTTP:
		return s.serveHTTP(ctx, cfg)
	default:
		return fmt.Errorf("unsupported transport %q", cfg.Transport)
	}
}

func (s *Server) serveHTTP(ctx context.Context, cfg config.ServerConfig) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.Int("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")

	// Give outstanding requests a deadline for completion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	return nil
}
