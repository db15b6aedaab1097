package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewUpstreamClient creates a client for read-only upstream API calls.
// It sets no overall Timeout: callers bound each request with a context deadline so that
// cancellation follows the inbound request. Idle connections are pooled per host.
func NewUpstreamClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
	}
}
