// Package profile loads the user profile and applies the order-history
// precedence rule between local and remote history.
package profile

import (
	"context"
	"sync"

	"haaangry-client/internal/api"
	"haaangry-client/internal/domain"
	"haaangry-client/internal/fixtures"
	"haaangry-client/internal/history"
)

type Store struct {
	mu      sync.Mutex
	client  *api.Client
	local   *history.Store
	profile *domain.Profile
	orders  []domain.Order
	loading bool
}

func NewStore(client *api.Client, local *history.Store) *Store {
	return &Store{client: client, local: local}
}

// Load fetches the profile (fixture fallback) and resolves history with a
// one-way precedence: a device that has ever placed an order locally uses
// local history and never consults the remote endpoint; only an empty
// local history falls back to GET /orders/history, or to empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	prof := api.Do[domain.Profile](ctx, s.client, api.Profile(), nil, fixtures.Profile)

	orders := s.local.Load()
	if len(orders) == 0 {
		if remote := api.Do[domain.OrderHistory](ctx, s.client, api.OrderHistory(), nil, fixtures.None); remote != nil {
			orders = remote.Orders
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if prof != nil {
		s.profile = prof
	}
	s.orders = orders
}

// RecordOrder persists a freshly placed order locally and keeps the
// in-memory history in sync.
func (s *Store) RecordOrder(o domain.Order) {
	orders := s.local.Append(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

func (s *Store) Profile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Store) History() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
