package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/services/mcp"
)

// maxRequestBody caps an inbound JSON-RPC message
const maxRequestBody = 1 << 20

// MCPHandler handles MCP protocol requests over HTTP POST (JSON-RPC 2.0).
// tools/call is routed to the ToolRouter so failures carry their mapped error codes;
// every other method (initialize, ping, tools/list, notifications) is answered by the
// mcp-go server the tools are registered with.
type MCPHandler struct {
	router    *mcp.ToolRouter
	mcpServer *server.MCPServer
	logger    arbor.ILogger
}

// NewMCPHandler creates a new MCP handler
func NewMCPHandler(router *mcp.ToolRouter, mcpServer *server.MCPServer, logger arbor.ILogger) *MCPHandler {
	return &MCPHandler{
		router:    router,
		mcpServer: mcpServer,
		logger:    logger,
	}
}

// HandleRPC handles JSON-RPC 2.0 requests
func (h *MCPHandler) HandleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.sendError(w, nil, mcp.InvalidRequest, "Method must be POST", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		h.sendError(w, nil, mcp.ParseError, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req mcp.JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.sendError(w, nil, mcp.ParseError, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Validate JSON-RPC version
	if req.JSONRPC != "2.0" {
		h.sendError(w, req.ID, mcp.InvalidRequest, "Invalid JSON-RPC version", http.StatusBadRequest)
		return
	}

	h.logger.Debug().Str("method", req.Method).Msg("MCP RPC request")

	if req.Method == mcp.MethodToolsCall {
		if req.IsNotification() {
			h.logger.Debug().Str("method", req.Method).Msg("Ignoring tools/call sent as a notification")
			w.WriteHeader(http.StatusAccepted)
			return
		}
		h.handleCallTool(w, r, req)
		return
	}

	response := h.mcpServer.HandleMessage(r.Context(), body)
	if response == nil || req.IsNotification() {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// handleCallTool handles tools/call requests
func (h *MCPHandler) handleCallTool(w http.ResponseWriter, r *http.Request, req mcp.JSONRPCRequest) {
	var params mcp.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		h.sendError(w, req.ID, mcp.InvalidParams, "Missing or invalid 'name' parameter", http.StatusOK)
		return
	}

	result, err := h.router.CallTool(r.Context(), params.Name, params.Arguments)
	if err != nil {
		rpcErr := mcp.MapError(params.Name, err)
		h.sendRPCError(w, req.ID, rpcErr, http.StatusOK)
		return
	}

	h.sendSuccess(w, req.ID, result)
}

// sendSuccess sends a successful JSON-RPC response
func (h *MCPHandler) sendSuccess(w http.ResponseWriter, id json.RawMessage, result interface{}) {
	h.writeJSON(w, http.StatusOK, mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// sendError sends an error JSON-RPC response
func (h *MCPHandler) sendError(w http.ResponseWriter, id json.RawMessage, code int, message string, httpStatus int) {
	h.sendRPCError(w, id, &mcp.RPCError{Code: code, Message: message}, httpStatus)
}

func (h *MCPHandler) sendRPCError(w http.ResponseWriter, id json.RawMessage, rpcErr *mcp.RPCError, httpStatus int) {
	h.writeJSON(w, httpStatus, mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   rpcErr,
	})
}

func (h *MCPHandler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if err := WriteJSON(w, status, payload); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write MCP response")
	}
}

// HealthHandler reports liveness. It is served without authentication and exposes no
// configuration.
func HealthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	}
}
