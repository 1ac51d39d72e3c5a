// Package feed holds the video feed loaded at app start.
package feed

import (
	"context"
	"sync"

	"haaangry-client/internal/api"
	"haaangry-client/internal/domain"
	"haaangry-client/internal/fixtures"
)

type Store struct {
	mu      sync.Mutex
	client  *api.Client
	videos  []domain.Video
	loading bool
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client}
}

// Load fetches the feed, falling back silently to the bundled sample.
// An empty result leaves the previous list in place: the view layer
// treats empty as "still loading", never as confirmed no content.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	videos := api.Do[[]domain.Video](ctx, s.client, api.Feed(), nil, fixtures.Feed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if videos != nil {
		s.videos = *videos
	}
}

func (s *Store) Videos() []domain.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Video(nil), s.videos...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
