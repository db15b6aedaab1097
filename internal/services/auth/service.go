package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
)

// Decision is the outcome of a bearer token check
type Decision int

const (
	// Reject stops the request before any tool logic runs
	Reject Decision = iota
	// Allow lets the request through to the tool surface
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "reject"
}

// ErrUnauthorized is reported to callers presenting a missing or wrong bearer token
var ErrUnauthorized = errors.New("missing or invalid bearer token")

// Service is a single all-or-nothing gate in front of every tool: one configured secret,
// no sessions, no expiry, no per-tool scopes.
type Service struct {
	secret []byte
	logger arbor.ILogger
}

// NewService creates a new auth gate for the configured secret
func NewService(secret string, logger arbor.ILogger) *Service {
	return &Service{
		secret: []byte(secret),
		logger: logger,
	}
}

// Authorize compares the presented token to the configured secret in constant time.
// An empty secret rejects everything.
func (s *Service) Authorize(presented string) Decision {
	if len(s.secret) == 0 || presented == "" {
		return Reject
	}
	if subtle.ConstantTimeCompare([]byte(presented), s.secret) != 1 {
		return Reject
	}
	return Allow
}

// AuthorizeRequest extracts the bearer token from the request and authorizes it
func (s *Service) AuthorizeRequest(r *http.Request) Decision {
	decision := s.Authorize(BearerToken(r))
	if decision == Reject {
		s.logger.Warn().
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Bool("header_present", r.Header.Get("Authorization") != "").
			Msg("Rejected request with missing or invalid bearer token")
	}
	return decision
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header, or ""
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
