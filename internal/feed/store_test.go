package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haaangry-client/internal/api"
)

type fakeTransport struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	return f.handler(req)
}

func newStore(handler func(req *http.Request) (*http.Response, error)) *Store {
	client := api.New("http://127.0.0.1:8000", &fakeTransport{handler: handler}, 250*time.Millisecond)
	return NewStore(client)
}

func TestLoad_Success(t *testing.T) {
	s := newStore(func(req *http.Request) (*http.Response, error) {
		body := `[{"id":"live-1","url":"https://example.com/v.mp4","title":"Live video","tags":[]}]`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})

	s.Load(context.Background())

	videos := s.Videos()
	require.Len(t, videos, 1)
	assert.Equal(t, "live-1", videos[0].ID)
	assert.False(t, s.Loading())
}

func TestLoad_TransportFailureFallsBackToSample(t *testing.T) {
	s := newStore(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	s.Load(context.Background())

	// The bundled sample feed fills in silently.
	assert.NotEmpty(t, s.Videos())
	assert.False(t, s.Loading())
}

func TestVideos_ReturnsCopy(t *testing.T) {
	s := newStore(func(req *http.Request) (*http.Response, error) {
		body := `[{"id":"v1","url":"u","title":"t","tags":[]},{"id":"v2","url":"u","title":"t","tags":[]}]`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})
	s.Load(context.Background())

	videos := s.Videos()
	videos[0].ID = "mutated"
	assert.Equal(t, "v1", s.Videos()[0].ID)
}
