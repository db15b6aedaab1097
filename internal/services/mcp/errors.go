package mcp

import (
	"errors"
	"fmt"

	"github.com/ternarybob/localguide/internal/services/guide"
	"github.com/ternarybob/localguide/internal/services/places"
)

// MapError translates a tool failure into the JSON-RPC error sent to the caller.
//
//   - *guide.NotFoundError   -> NotFound (-32004) with the literal message
//   - *RPCError              -> passed through (input validation, unknown tool)
//   - *places.UpstreamError  -> InternalError, never downgraded to NotFound
//   - anything else          -> InternalError
func MapError(toolName string, err error) *RPCError {
	if err == nil {
		return nil
	}

	var notFound *guide.NotFoundError
	if errors.As(err, &notFound) {
		return &RPCError{Code: NotFound, Message: notFound.Message}
	}

	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	var upstreamErr *places.UpstreamError
	if errors.As(err, &upstreamErr) {
		return &RPCError{
			Code:    InternalError,
			Message: fmt.Sprintf("Error calling tool '%s': upstream places API failure", toolName),
			Data:    map[string]interface{}{"upstream": upstreamErr.Error()},
		}
	}

	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Error calling tool '%s'", toolName),
	}
}
