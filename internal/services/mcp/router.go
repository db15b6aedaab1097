package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/common"
	"github.com/ternarybob/localguide/internal/models"
	"github.com/ternarybob/localguide/internal/services/guide"
)

// ToolService is the orchestration layer behind the tools
type ToolService interface {
	FindNearbyPlaces(ctx context.Context, query, location string, maxResults int) (*models.NearbyPlaces, error)
	GetPlaceReviews(ctx context.Context, placeID string) (*models.PlaceReviews, error)
	GetPlacePhotos(ctx context.Context, placeID, placeName string, maxPhotos int) (*models.PlacePhotos, error)
}

// ToolRouter validates tool arguments, runs the tool and shapes the MCP result
type ToolRouter struct {
	service ToolService
	logger  arbor.ILogger
}

// NewToolRouter creates a new MCP tool router
func NewToolRouter(service ToolService, logger arbor.ILogger) *ToolRouter {
	return &ToolRouter{
		service: service,
		logger:  logger,
	}
}

// Register adds every tool to an mcp-go server. The server answers tools/list from these
// definitions; its handlers route back through CallTool.
func (r *ToolRouter) Register(s *server.MCPServer) {
	for _, tool := range Tools() {
		s.AddTool(tool, r.handler(tool.Name))
	}
}

// handler adapts CallTool for the mcp-go registration that answers tools/list.
// HTTP tools/call never reaches it; MCPHandler dispatches those to CallTool directly.
func (r *ToolRouter) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			return nil, &RPCError{Code: InvalidParams, Message: fmt.Sprintf("Invalid arguments: %v", err)}
		}
		result, err := r.CallTool(ctx, name, args)
		if err != nil {
			return nil, MapError(name, err)
		}
		return result, nil
	}
}

// CallTool executes a tool call. Errors are returned unmapped; use MapError at the
// transport boundary.
func (r *ToolRouter) CallTool(ctx context.Context, name string, args json.RawMessage) (*mcpgo.CallToolResult, error) {
	startTime := time.Now()
	logger := r.logger.WithCorrelationId(common.NewCorrelationID())

	logger.Info().
		Str("tool", name).
		Msg("Executing tool")

	result, err := r.dispatch(ctx, name, args)

	duration := time.Since(startTime)

	if err != nil {
		event := logger.Error()
		if guide.IsNotFound(err) {
			event = logger.Info()
		}
		event.
			Err(err).
			Str("tool", name).
			Dur("duration", duration).
			Msg("Tool execution failed")
		return nil, err
	}

	logger.Info().
		Str("tool", name).
		Int("content_blocks", len(result.Content)).
		Dur("duration", duration).
		Msg("Tool execution complete")

	return result, nil
}

func (r *ToolRouter) dispatch(ctx context.Context, name string, args json.RawMessage) (*mcpgo.CallToolResult, error) {
	switch name {
	case ToolFindNearbyPlaces:
		in := newFindNearbyPlacesInput()
		if err := decodeArguments(args, in); err != nil {
			return nil, err
		}
		nearby, err := r.service.FindNearbyPlaces(ctx, in.Query, in.Location, int(in.MaxResults))
		if err != nil {
			return nil, err
		}
		return structuredResult(nearby)

	case ToolGetPlaceReviews:
		in := &GetPlaceReviewsInput{}
		if err := decodeArguments(args, in); err != nil {
			return nil, err
		}
		reviews, err := r.service.GetPlaceReviews(ctx, in.PlaceID)
		if err != nil {
			return nil, err
		}
		return structuredResult(reviews)

	case ToolGetPlacePhotos:
		in := newGetPlacePhotosInput()
		if err := decodeArguments(args, in); err != nil {
			return nil, err
		}
		photos, err := r.service.GetPlacePhotos(ctx, in.PlaceID, in.PlaceName, int(in.MaxPhotos))
		if err != nil {
			return nil, err
		}
		return photoResult(photos), nil

	default:
		return nil, &RPCError{Code: InvalidParams, Message: fmt.Sprintf("Unknown tool: %s", name)}
	}
}

// structuredResult returns the payload as structured content with a JSON text fallback
func structuredResult(payload interface{}) (*mcpgo.CallToolResult, error) {
	text, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcpgo.NewToolResultStructured(payload, string(text)), nil
}

// photoResult builds the caption block followed by one image block per downloaded photo
func photoResult(photos *models.PlacePhotos) *mcpgo.CallToolResult {
	content := make([]mcpgo.Content, 0, len(photos.Images)+1)
	content = append(content, mcpgo.NewTextContent(photos.Caption))
	for _, img := range photos.Images {
		content = append(content, mcpgo.NewImageContent(img.Data, img.MIMEType))
	}
	return &mcpgo.CallToolResult{Content: content}
}
