package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Handler returns the HTTP routes: /health and the streamable MCP endpoint at /mcp
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(s.requestLogger)

	router.Get("/health", s.handleHealth)

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)

	return router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// handleHealth handles GET /health. Optional dependencies that are down
// degrade the status but do not fail the check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if check(r.Context()) {
			deps[name] = "up"
			continue
		}
		deps[name] = "down"
		status = "degraded"
	}

	body := map[string]interface{}{
		"status":  status,
		"service": Name,
		"version": Version,
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
