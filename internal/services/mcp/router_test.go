package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/models"
	"github.com/ternarybob/localguide/internal/services/guide"
	"github.com/tidwall/gjson"
)

// createTestLogger creates a logger for testing
func createTestLogger() arbor.ILogger {
	return arbor.NewLogger()
}

// mockToolService implements ToolService for testing
type mockToolService struct {
	findFunc    func(ctx context.Context, query, location string, maxResults int) (*models.NearbyPlaces, error)
	reviewsFunc func(ctx context.Context, placeID string) (*models.PlaceReviews, error)
	photosFunc  func(ctx context.Context, placeID, placeName string, maxPhotos int) (*models.PlacePhotos, error)
}

func (m *mockToolService) FindNearbyPlaces(ctx context.Context, query, location string, maxResults int) (*models.NearbyPlaces, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, query, location, maxResults)
	}
	return &models.NearbyPlaces{}, nil
}

func (m *mockToolService) GetPlaceReviews(ctx context.Context, placeID string) (*models.PlaceReviews, error) {
	if m.reviewsFunc != nil {
		return m.reviewsFunc(ctx, placeID)
	}
	return &models.PlaceReviews{}, nil
}

func (m *mockToolService) GetPlacePhotos(ctx context.Context, placeID, placeName string, maxPhotos int) (*models.PlacePhotos, error) {
	if m.photosFunc != nil {
		return m.photosFunc(ctx, placeID, placeName, maxPhotos)
	}
	return &models.PlacePhotos{}, nil
}

func marshalResult(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestTools_Definitions(t *testing.T) {
	tools := Tools()
	require.Len(t, tools, 3)

	assert.Equal(t, ToolFindNearbyPlaces, tools[0].Name)
	assert.Equal(t, ToolGetPlaceReviews, tools[1].Name)
	assert.Equal(t, ToolGetPlacePhotos, tools[2].Name)

	find := marshalResult(t, tools[0])
	assert.ElementsMatch(t, []interface{}{"query"}, gjson.Get(find, "inputSchema.required").Value())
	assert.Equal(t, float64(3), gjson.Get(find, "inputSchema.properties.max_results.default").Float())

	photos := marshalResult(t, tools[2])
	assert.ElementsMatch(t, []interface{}{"place_id", "place_name"}, gjson.Get(photos, "inputSchema.required").Value())
	assert.Equal(t, float64(1), gjson.Get(photos, "inputSchema.properties.max_photos.default").Float())
}

func TestCallTool_FindNearbyPlaces(t *testing.T) {
	address := "1 Main St"
	service := &mockToolService{
		findFunc: func(ctx context.Context, query, location string, maxResults int) (*models.NearbyPlaces, error) {
			assert.Equal(t, "pizza", query)
			assert.Equal(t, "", location)
			assert.Equal(t, guide.DefaultMaxResults, maxResults)
			return &models.NearbyPlaces{Places: []models.PlaceInfo{
				{PlaceID: "P1", Name: "Pizzeria X", Address: &address, MapsURL: "https://maps.google.com/?cid=1"},
			}}, nil
		},
	}
	router := NewToolRouter(service, createTestLogger())

	result, err := router.CallTool(context.Background(), ToolFindNearbyPlaces, json.RawMessage(`{"query":"pizza"}`))
	require.NoError(t, err)

	body := marshalResult(t, result)
	assert.Equal(t, "P1", gjson.Get(body, "structuredContent.places.0.place_id").String())
	assert.Equal(t, "1 Main St", gjson.Get(body, "structuredContent.places.0.address").String())
	assert.Equal(t, gjson.Null, gjson.Get(body, "structuredContent.places.0.rating").Type)

	// Text fallback carries the same JSON
	text := gjson.Get(body, "content.0.text").String()
	assert.Equal(t, "Pizzeria X", gjson.Get(text, "places.0.name").String())
}

func TestCallTool_GetPlacePhotos(t *testing.T) {
	service := &mockToolService{
		photosFunc: func(ctx context.Context, placeID, placeName string, maxPhotos int) (*models.PlacePhotos, error) {
			assert.Equal(t, "P1", placeID)
			assert.Equal(t, "Pizzeria X", placeName)
			assert.Equal(t, 1, maxPhotos)
			return &models.PlacePhotos{
				Caption: "Here is a photo of Pizzeria X:",
				Images:  []models.EncodedImage{{Data: "aGVsbG8=", MIMEType: models.ImageMIMEType}},
			}, nil
		},
	}
	router := NewToolRouter(service, createTestLogger())

	result, err := router.CallTool(context.Background(), ToolGetPlacePhotos, json.RawMessage(`{"place_id":"P1","place_name":"Pizzeria X"}`))
	require.NoError(t, err)
	require.Len(t, result.Content, 2)

	body := marshalResult(t, result)
	assert.Equal(t, "text", gjson.Get(body, "content.0.type").String())
	assert.Equal(t, "Here is a photo of Pizzeria X:", gjson.Get(body, "content.0.text").String())
	assert.Equal(t, "image", gjson.Get(body, "content.1.type").String())
	assert.Equal(t, "aGVsbG8=", gjson.Get(body, "content.1.data").String())
	assert.Equal(t, "image/jpeg", gjson.Get(body, "content.1.mimeType").String())
}

func TestCallTool_ReturnsUnmappedErrors(t *testing.T) {
	service := &mockToolService{
		reviewsFunc: func(ctx context.Context, placeID string) (*models.PlaceReviews, error) {
			return nil, &guide.NotFoundError{Message: guide.MsgNoReviews}
		},
	}
	router := NewToolRouter(service, createTestLogger())

	_, err := router.CallTool(context.Background(), ToolGetPlaceReviews, json.RawMessage(`{"place_id":"P1"}`))
	require.Error(t, err)
	assert.True(t, guide.IsNotFound(err))
}

func TestCallTool_InvalidArgumentsSkipService(t *testing.T) {
	service := &mockToolService{
		findFunc: func(ctx context.Context, query, location string, maxResults int) (*models.NearbyPlaces, error) {
			t.Fatalf("service must not be called with invalid arguments")
			return nil, nil
		},
	}
	router := NewToolRouter(service, createTestLogger())

	_, err := router.CallTool(context.Background(), ToolFindNearbyPlaces, json.RawMessage(`{"max_results":2}`))
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, InvalidParams, rpcErr.Code)
}

func TestCallTool_UnknownTool(t *testing.T) {
	router := NewToolRouter(&mockToolService{}, createTestLogger())

	_, err := router.CallTool(context.Background(), "get_weather", nil)
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, InvalidParams, rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "get_weather")
}

func TestHandler_RegisteredToolPath(t *testing.T) {
	service := &mockToolService{
		reviewsFunc: func(ctx context.Context, placeID string) (*models.PlaceReviews, error) {
			if placeID == "P404" {
				return nil, &guide.NotFoundError{Message: guide.MsgNoReviews}
			}
			return &models.PlaceReviews{Reviews: []models.PlaceReview{{Author: "Ana", Rating: 4}}}, nil
		},
	}
	router := NewToolRouter(service, createTestLogger())
	handle := router.handler(ToolGetPlaceReviews)

	request := mcpgo.CallToolRequest{}
	request.Params.Name = ToolGetPlaceReviews
	request.Params.Arguments = map[string]interface{}{"place_id": "P1"}

	result, err := handle(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "Ana", gjson.Get(marshalResult(t, result), "structuredContent.reviews.0.author").String())

	request.Params.Arguments = map[string]interface{}{"place_id": "P404"}
	_, err = handle(context.Background(), request)
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, NotFound, rpcErr.Code)
	assert.Equal(t, guide.MsgNoReviews, rpcErr.Message)
}
