package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/app"
	"github.com/ternarybob/localguide/internal/common"
	"github.com/ternarybob/localguide/internal/models"
	"github.com/tidwall/gjson"
)

const testToken = "guide-token"

// fakePlacesClient implements interfaces.PlacesClient with canned data
type fakePlacesClient struct {
	calls atomic.Int32
}

func (f *fakePlacesClient) SearchByText(ctx context.Context, query, location string) ([]string, error) {
	f.calls.Add(1)
	if query == "nothing" {
		return []string{}, nil
	}
	return []string{"P1", "P2"}, nil
}

func (f *fakePlacesClient) FetchDetails(ctx context.Context, placeID string) (*models.PlaceInfo, error) {
	return &models.PlaceInfo{PlaceID: placeID, Name: "Place " + placeID}, nil
}

func (f *fakePlacesClient) FetchReviews(ctx context.Context, placeID string) ([]models.PlaceReview, error) {
	return []models.PlaceReview{}, nil
}

func (f *fakePlacesClient) FetchPhotoDescriptors(ctx context.Context, placeID string, maxPhotos int) ([]models.PlacePhoto, error) {
	return []models.PlacePhoto{{PhotoReference: "r1", ImageURL: "http://photo/r1"}}, nil
}

func (f *fakePlacesClient) DownloadAndEncode(ctx context.Context, imageURL string) (string, error) {
	return "aGVsbG8=", nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakePlacesClient) {
	t.Helper()
	config := common.NewDefaultConfig()
	config.Auth.Token = testToken
	config.PlacesAPI.APIKey = "unused"

	client := &fakePlacesClient{}
	application := app.NewWithClient(config, client, arbor.NewLogger())
	srv := httptest.NewServer(New(application).Handler())
	t.Cleanup(srv.Close)
	return srv, client
}

func doRPC(t *testing.T, srv *httptest.Server, token, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/mcp", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	return resp, sb.String()
}

func TestMCPEndpoint_RequiresBearerToken(t *testing.T) {
	srv, client := newTestServer(t)
	call := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"find_nearby_places","arguments":{"query":"pizza"}}}`

	for _, token := range []string{"", "wrong-token"} {
		resp, body := doRPC(t, srv, token, call)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
		assert.NotEmpty(t, gjson.Get(body, "error").String())
	}

	// Rejected calls never reach the tools
	assert.Equal(t, int32(0), client.calls.Load())
}

func TestMCPEndpoint_FindNearbyPlaces(t *testing.T) {
	srv, client := newTestServer(t)

	resp, body := doRPC(t, srv, testToken,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"find_nearby_places","arguments":{"query":"pizza","max_results":1}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	places := gjson.Get(body, "result.structuredContent.places")
	require.Len(t, places.Array(), 1)
	assert.Equal(t, "P1", places.Get("0.place_id").String())
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestMCPEndpoint_FindNearbyPlacesWithLocation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRPC(t, srv, testToken,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"find_nearby_places","arguments":{"query":"pizza","location":"41.9,12.5","max_results":2.0}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, gjson.Get(body, "error").Exists())
	assert.Len(t, gjson.Get(body, "result.structuredContent.places").Array(), 2)

	resp, body = doRPC(t, srv, testToken,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"find_nearby_places","arguments":{"query":"pizza","location":"rome"}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(-32602), gjson.Get(body, "error.code").Int())
}

func TestMCPEndpoint_NotFoundCode(t *testing.T) {
	srv, _ := newTestServer(t)

	_, body := doRPC(t, srv, testToken,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"find_nearby_places","arguments":{"query":"nothing"}}}`)
	assert.Equal(t, int64(-32004), gjson.Get(body, "error.code").Int())
	assert.Equal(t, "Couldn't find any places matching that.", gjson.Get(body, "error.message").String())

	_, body = doRPC(t, srv, testToken,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_place_reviews","arguments":{"place_id":"P1"}}}`)
	assert.Equal(t, int64(-32004), gjson.Get(body, "error.code").Int())
	assert.Equal(t, "No reviews found for this place.", gjson.Get(body, "error.message").String())
}

func TestMCPEndpoint_PhotosDoNotLeakURL(t *testing.T) {
	srv, _ := newTestServer(t)

	_, body := doRPC(t, srv, testToken,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"get_place_photos","arguments":{"place_id":"P1","place_name":"Pizzeria X"}}}`)
	assert.Equal(t, "Here is a photo of Pizzeria X:", gjson.Get(body, "result.content.0.text").String())
	assert.Equal(t, "aGVsbG8=", gjson.Get(body, "result.content.1.data").String())
	assert.NotContains(t, body, "http://photo/r1")
}

func TestHealthEndpoint_NoAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
