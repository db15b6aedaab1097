package places

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// UpstreamError reports a failed Places API call: transport failure, non-2xx status,
// undecodable body, or an upstream error status. Its message never contains the request URL.
type UpstreamError struct {
	Endpoint   string // textsearch, details, photo
	StatusCode int    // HTTP status, 0 on transport failure
	Status     string // Places "status" field when the body was decoded
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("places API %s request failed", e.Endpoint))
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(": HTTP %d", e.StatusCode))
	}
	if e.Status != "" {
		sb.WriteString(fmt.Sprintf(": %s", e.Status))
	}
	if e.Detail != "" {
		sb.WriteString(fmt.Sprintf(": %s", e.Detail))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

// stripURL drops the *url.Error wrapper, whose message embeds the full request URL
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
