package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haaangry-client/internal/domain"
	"haaangry-client/internal/fixtures"
)

type fakeTransport struct {
	mu       sync.Mutex
	requests []*http.Request
	handler  func(req *http.Request) (*http.Response, error)
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.handler(req)
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(handler func(req *http.Request) (*http.Response, error)) (*Client, *fakeTransport) {
	transport := &fakeTransport{handler: handler}
	return New("http://127.0.0.1:8000", transport, 250*time.Millisecond), transport
}

func TestDo_DecodesSuccess(t *testing.T) {
	client, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"user_id":"u1","name":"Ann","credits_balance_cents":500}`), nil
	})

	prof := Do[domain.Profile](context.Background(), client, Profile(), nil, fixtures.None)
	require.NotNil(t, prof)
	assert.Equal(t, "u1", prof.UserID)
	assert.Equal(t, 500, prof.CreditsBalanceCents)
	assert.Equal(t, 1, transport.count())
}

func TestDo_BuildsURLAndHeaders(t *testing.T) {
	var seen *http.Request
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	Do[domain.OrderOptions](context.Background(), client, OrderOptions("v42", "tacos al pastor"), nil, fixtures.None)

	require.NotNil(t, seen)
	assert.Equal(t, http.MethodGet, seen.Method)
	assert.Equal(t, "/order/options", seen.URL.Path)
	assert.Equal(t, "v42", seen.URL.Query().Get("video_id"))
	assert.Equal(t, "tacos al pastor", seen.URL.Query().Get("title"))
	assert.Equal(t, "application/json", seen.Header.Get("Accept"))
}

func TestDo_PostEncodesBody(t *testing.T) {
	var payload []byte
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		payload, _ = io.ReadAll(req.Body)
		return jsonResponse(http.StatusOK, `{"id":"o1","status":"confirmed"}`), nil
	})

	order := domain.Order{ID: domain.TempOrderID, RestaurantID: "r1", Status: "created"}
	placed := Do[domain.Order](context.Background(), client, CreateOrder(), order, fixtures.None)

	require.NotNil(t, placed)
	assert.Equal(t, "confirmed", placed.Status)
	assert.Contains(t, string(payload), `"restaurant_id":"r1"`)
}

func TestDo_TransportErrorFallsBackToFixture(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	prof := Do[domain.Profile](context.Background(), client, Profile(), nil, fixtures.Profile)
	require.NotNil(t, prof)
	assert.Equal(t, "u-demo", prof.UserID)
}

func TestDo_ServerErrorFallsBackToFixture(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `boom`), nil
	})

	videos := Do[[]domain.Video](context.Background(), client, Feed(), nil, fixtures.Feed)
	require.NotNil(t, videos)
	assert.NotEmpty(t, *videos)
}

func TestDo_DecodeFailureFallsBackToFixture(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `not json at all`), nil
	})

	prof := Do[domain.Profile](context.Background(), client, Profile(), nil, fixtures.Profile)
	require.NotNil(t, prof)
	assert.Equal(t, "u-demo", prof.UserID)
}

func TestDo_FailureWithoutFixtureReturnsNil(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	order := Do[domain.Order](context.Background(), client, CreateOrder(), domain.Order{}, fixtures.None)
	assert.Nil(t, order)
}

func TestDo_OpenBreakerSkipsNetworkWhenFixtureExists(t *testing.T) {
	client, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	// First call fails and marks the server down.
	assert.Nil(t, Do[domain.Order](context.Background(), client, CreateOrder(), domain.Order{}, fixtures.None))
	assert.Equal(t, 1, transport.count())

	// Subsequent fixture-backed calls skip the transport entirely.
	prof := Do[domain.Profile](context.Background(), client, Profile(), nil, fixtures.Profile)
	require.NotNil(t, prof)
	assert.Equal(t, 1, transport.count())
}

func TestPrimeAvailability_RefusedConnectMarksServerDown(t *testing.T) {
	// Grab a loopback port and close it so the dial is refused fast.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	transport := &fakeTransport{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{}`), nil
	}}
	client := New("http://"+addr, transport, 250*time.Millisecond)
	client.PrimeAvailability()

	prof := Do[domain.Profile](context.Background(), client, Profile(), nil, fixtures.Profile)
	require.NotNil(t, prof)
	assert.Equal(t, "u-demo", prof.UserID)
	assert.Equal(t, 0, transport.count())
}

func TestPrimeAvailability_ReachableHostKeepsNetworkPath(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	transport := &fakeTransport{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"user_id":"live"}`), nil
	}}
	client := New("http://"+listener.Addr().String(), transport, 250*time.Millisecond)
	client.PrimeAvailability()

	prof := Do[domain.Profile](context.Background(), client, Profile(), nil, fixtures.Profile)
	require.NotNil(t, prof)
	assert.Equal(t, "live", prof.UserID)
	assert.Equal(t, 1, transport.count())
}
