package order

import "haaangry-client/internal/domain"

// Read-side snapshot accessors. Slices are copied so observers cannot
// mutate session state.

func (s *Session) Options() *domain.OrderOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

func (s *Session) Cart() []domain.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.OrderItem(nil), s.cart...)
}

func (s *Session) SelectedRestaurant() *domain.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restaurant
}

func (s *Session) SubtotalCents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalCents
}

func (s *Session) TotalCents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCents
}

func (s *Session) EtaMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.etaMinutes
}

func (s *Session) FreeDelivery() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freeDelivery
}
