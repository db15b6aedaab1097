package server

import (
	"net/http"

	"github.com/ternarybob/localguide/internal/common"
	"github.com/ternarybob/localguide/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP JSON-RPC endpoint, gated by the bearer token
	mux.Handle("/mcp", s.authMiddleware(http.HandlerFunc(s.app.MCPHandler.HandleRPC)))

	// Liveness, unauthenticated
	mux.HandleFunc("/health", handlers.HealthHandler(common.GetVersion()))

	// 404 for everything else
	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}
