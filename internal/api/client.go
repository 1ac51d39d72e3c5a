// Package api is the HTTP gateway of the client core. Every call is a
// typed round trip against one endpoint with optional fixture fallback;
// absence of data is communicated with a nil result, never an error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"haaangry-client/internal/fixtures"
)

// HTTPClient is the transport seam; tests inject a fake.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	base          *url.URL
	http          HTTPClient
	probeDeadline time.Duration

	// breaker caches server reachability between calls so that repeated
	// requests with a fixture fallback skip the network while the host
	// is known down.
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New builds a client against the given base address. A malformed base
// address leaves every request answering from fixtures only.
func New(baseURL string, hc HTTPClient, probeDeadline time.Duration) *Client {
	base, err := url.Parse(baseURL)
	if err != nil {
		log.Printf("[api] bad base url %q: %v", baseURL, err)
		base = nil
	}
	return &Client{
		base:          base,
		http:          hc,
		probeDeadline: probeDeadline,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "api",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
		}),
	}
}

// DefaultHTTPClient builds the real transport with the bounded timeouts
// the core requires: a connect deadline and a larger full-resource one.
func DefaultHTTPClient(requestTimeout, resourceTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: resourceTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: requestTimeout}).DialContext,
		},
	}
}

// Do performs one typed round trip. On any failure (transport, non-2xx,
// decode) the named fixture is loaded instead when one was supplied;
// otherwise the result is nil. When the server is already known to be
// unreachable and a fixture exists, the network is skipped entirely.
func Do[T any](ctx context.Context, c *Client, ep Endpoint, body any, fallback fixtures.Name) *T {
	if fallback != fixtures.None && !c.available() {
		return fixtures.Load[T](fallback)
	}

	data, err := c.roundTrip(ctx, ep, body)
	if err != nil {
		log.Printf("[api] %s %s: %v", ep.Method, ep.Path, err)
		return fixtures.Load[T](fallback)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		log.Printf("[api] decode %s: %v", ep.Path, err)
		return fixtures.Load[T](fallback)
	}
	return &out
}

func (c *Client) roundTrip(ctx context.Context, ep Endpoint, body any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		if c.base == nil {
			return nil, fmt.Errorf("no base url configured")
		}
		u := c.base.JoinPath(ep.Path)
		if len(ep.Query) > 0 {
			u.RawQuery = ep.Query.Encode()
		}

		var payload io.Reader
		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encode request body: %w", err)
			}
			payload = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, ep.Method, u.String(), payload)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
}

// available reports whether the server is worth contacting. An unknown
// state counts as reachable; only an open breaker skips the network.
func (c *Client) available() bool {
	return c.breaker.State() != gobreaker.StateOpen
}

// PrimeAvailability runs a TCP reachability probe with a hard deadline
// ahead of the first real request, so an offline start answers from
// fixtures without waiting on connect timeouts.
func (c *Client) PrimeAvailability() {
	if c.base == nil {
		return
	}
	host := c.base.Hostname()
	port := c.base.Port()
	if port == "" {
		if c.base.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	// Routed through the breaker so a refused connect marks the server
	// down for subsequent calls.
	_, err := c.breaker.Execute(func() ([]byte, error) {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), c.probeDeadline)
		if err != nil {
			return nil, err
		}
		conn.Close()
		return nil, nil
	})
	if err != nil {
		log.Printf("[api] probe %s: %v", c.base.Host, err)
	}
}
