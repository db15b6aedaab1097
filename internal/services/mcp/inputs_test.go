package mcp

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireInvalidParams(t *testing.T, err error) *RPCError {
	t.Helper()
	require.Error(t, err)
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, InvalidParams, rpcErr.Code)
	return rpcErr
}

func TestDecodeArguments_FindNearbyPlacesDefaults(t *testing.T) {
	in := newFindNearbyPlacesInput()
	require.NoError(t, decodeArguments(json.RawMessage(`{"query":"pizza"}`), in))

	assert.Equal(t, "pizza", in.Query)
	assert.Equal(t, "", in.Location)
	assert.Equal(t, WholeNumber(3), in.MaxResults)
}

func TestDecodeArguments_FindNearbyPlacesOverrides(t *testing.T) {
	in := newFindNearbyPlacesInput()
	require.NoError(t, decodeArguments(json.RawMessage(`{"query":"pizza","location":"40.7128,-74.0060","max_results":5}`), in))

	assert.Equal(t, "40.7128,-74.0060", in.Location)
	assert.Equal(t, WholeNumber(5), in.MaxResults)
}

func TestDecodeArguments_FindNearbyPlacesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		message string
	}{
		{"missing query", `{}`, "query is required"},
		{"bad location", `{"query":"pizza","location":"downtown"}`, "location must be 'latitude,longitude'"},
		{"zero results", `{"query":"pizza","max_results":0}`, "max_results must be at least 1"},
		{"too many results", `{"query":"pizza","max_results":21}`, "max_results must be at most 20"},
		{"wrong type", `{"query":42}`, "Invalid arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpcErr := requireInvalidParams(t, decodeArguments(json.RawMessage(tt.args), newFindNearbyPlacesInput()))
			assert.Contains(t, rpcErr.Message, tt.message)
		})
	}
}

func TestDecodeArguments_NullArgumentsKeepDefaults(t *testing.T) {
	in := newGetPlacePhotosInput()
	rpcErr := requireInvalidParams(t, decodeArguments(json.RawMessage(`null`), in))

	assert.Contains(t, rpcErr.Message, "place_id is required")
	assert.Contains(t, rpcErr.Message, "place_name is required")
	assert.Equal(t, WholeNumber(1), in.MaxPhotos)
}

func TestDecodeArguments_GetPlacePhotos(t *testing.T) {
	in := newGetPlacePhotosInput()
	require.NoError(t, decodeArguments(json.RawMessage(`{"place_id":"P1","place_name":"Pizzeria X"}`), in))
	assert.Equal(t, WholeNumber(1), in.MaxPhotos)

	in = newGetPlacePhotosInput()
	rpcErr := requireInvalidParams(t, decodeArguments(json.RawMessage(`{"place_id":"P1","place_name":"X","max_photos":11}`), in))
	assert.Contains(t, rpcErr.Message, "max_photos must be at most 10")
}

func TestDecodeArguments_GetPlaceReviews(t *testing.T) {
	in := &GetPlaceReviewsInput{}
	require.NoError(t, decodeArguments(json.RawMessage(`{"place_id":"P1"}`), in))
	assert.Equal(t, "P1", in.PlaceID)

	requireInvalidParams(t, decodeArguments(json.RawMessage(`{"place_id":""}`), &GetPlaceReviewsInput{}))
}

func TestDecodeArguments_LocationPairs(t *testing.T) {
	valid := []string{"41.9,12.5", "40.7128, -74.0060", "-90,180"}
	for _, location := range valid {
		in := newFindNearbyPlacesInput()
		args, err := json.Marshal(map[string]string{"query": "pizza", "location": location})
		require.NoError(t, err)
		require.NoError(t, decodeArguments(args, in), location)
		assert.Equal(t, location, in.Location)
	}

	invalid := []string{"41.9", "91,12.5", "41.9,181", "41.9,12.5,3", "north,east", ","}
	for _, location := range invalid {
		args, err := json.Marshal(map[string]string{"query": "pizza", "location": location})
		require.NoError(t, err)
		rpcErr := requireInvalidParams(t, decodeArguments(args, newFindNearbyPlacesInput()))
		assert.Contains(t, rpcErr.Message, "location must be 'latitude,longitude'", location)
	}
}

func TestDecodeArguments_WholeNumberCounts(t *testing.T) {
	in := newGetPlacePhotosInput()
	require.NoError(t, decodeArguments(json.RawMessage(`{"place_id":"P1","place_name":"X","max_photos":2.0}`), in))
	assert.Equal(t, WholeNumber(2), in.MaxPhotos)

	nearby := newFindNearbyPlacesInput()
	require.NoError(t, decodeArguments(json.RawMessage(`{"query":"pizza","max_results":7.0}`), nearby))
	assert.Equal(t, WholeNumber(7), nearby.MaxResults)

	nearby = newFindNearbyPlacesInput()
	require.NoError(t, decodeArguments(json.RawMessage(`{"query":"pizza","max_results":null}`), nearby))
	assert.Equal(t, WholeNumber(3), nearby.MaxResults)

	rpcErr := requireInvalidParams(t, decodeArguments(json.RawMessage(`{"place_id":"P1","place_name":"X","max_photos":2.5}`), newGetPlacePhotosInput()))
	assert.Contains(t, rpcErr.Message, "whole number")

	rpcErr = requireInvalidParams(t, decodeArguments(json.RawMessage(`{"query":"pizza","max_results":"3"}`), newFindNearbyPlacesInput()))
	assert.Contains(t, rpcErr.Message, "Invalid arguments")
}
