// Package order owns the active order session: the per-video option
// bundle, the in-progress cart and the derived money totals.
package order

import (
	"context"
	"sync"

	"haaangry-client/internal/api"
	"haaangry-client/internal/domain"
	"haaangry-client/internal/fixtures"
)

const (
	// DefaultDeliveryFeeCents applies while no restaurant is selected.
	DefaultDeliveryFeeCents = 299
	// NominalEtaMinutes is the ETA shown before a restaurant narrows it.
	NominalEtaMinutes = 30
)

// Session is scoped to one video's order flow. All state mutation is
// serialized by an internal mutex; derived fields are recomputed after
// every cart or selection change, never lazily.
type Session struct {
	mu     sync.Mutex
	client *api.Client

	options      *domain.OrderOptions
	cart         []domain.OrderItem
	restaurant   *domain.Restaurant
	freeDelivery bool

	subtotalCents int
	totalCents    int
	etaMinutes    int

	// requestedVideoID guards against a slow response for an abandoned
	// video overwriting the session of the one shown now.
	requestedVideoID string
}

func NewSession(client *api.Client) *Session {
	return &Session{client: client}
}

// FetchOptions loads the order bundle for a video. When the video differs
// from the loaded one (or force is set) the session is cleared before the
// network call starts, so an observer never sees a stale cart for the new
// video. A response that arrives after another video was requested is
// discarded.
func (s *Session) FetchOptions(ctx context.Context, videoID, title string, force bool) {
	s.mu.Lock()
	if force || s.options == nil || s.options.VideoID != videoID {
		s.resetLocked()
	}
	s.requestedVideoID = videoID
	s.mu.Unlock()

	opts := api.Do[domain.OrderOptions](ctx, s.client, api.OrderOptions(videoID, title), nil, fixtures.OrderOptionsV1)
	if opts == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.requestedVideoID != videoID {
		return // superseded by a later fetch
	}
	s.options = opts
	s.cart = append([]domain.OrderItem(nil), opts.Prefill...)
	if len(opts.TopRestaurants) > 0 {
		first := opts.TopRestaurants[0]
		s.restaurant = &first
	}
	s.recalcLocked()
}

// Reset clears the whole session. Callers do this after a receipt is shown.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.options = nil
	s.cart = nil
	s.restaurant = nil
	s.freeDelivery = false
	s.subtotalCents = 0
	s.totalCents = 0
	s.etaMinutes = 0
}

// AddSuggested appends a new line with quantity 1, snapshotting the
// item's name and price at insertion time.
func (s *Session) AddSuggested(item domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append(s.cart, domain.OrderItem{
		MenuItemID:         item.ID,
		NameSnapshot:       item.Name,
		PriceCentsSnapshot: item.PriceCents,
		Quantity:           1,
	})
	s.recalcLocked()
}

// Increment raises the quantity of the matching line by one. Unknown ids
// are a no-op.
func (s *Session) Increment(menuItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].MenuItemID == menuItemID {
			s.cart[i].Quantity++
			s.recalcLocked()
			return
		}
	}
}

// Decrement lowers the quantity of the matching line by one, floored at
// zero, and drops any line that reaches zero.
func (s *Session) Decrement(menuItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].MenuItemID == menuItemID {
			if s.cart[i].Quantity > 0 {
				s.cart[i].Quantity--
			}
			s.recalcLocked()
			break
		}
	}
	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.Quantity != 0 {
			kept = append(kept, line)
		}
	}
	s.cart = kept
}

// SelectRestaurant picks one of the loaded candidates by id. Unknown ids
// are a no-op.
func (s *Session) SelectRestaurant(restaurantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.options == nil {
		return
	}
	for _, r := range s.options.TopRestaurants {
		if r.ID == restaurantID {
			picked := r
			s.restaurant = &picked
			s.recalcLocked()
			return
		}
	}
}

// SetFreeDelivery toggles the fee override and recomputes immediately.
func (s *Session) SetFreeDelivery(free bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freeDelivery = free
	s.recalcLocked()
}

// Recalculate recomputes the derived fields from current state. Calling
// it twice with no intervening mutation yields identical results.
func (s *Session) Recalculate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalcLocked()
}

func (s *Session) recalcLocked() {
	subtotal := 0
	for _, line := range s.cart {
		subtotal += line.PriceCentsSnapshot * line.Quantity
	}
	s.subtotalCents = subtotal
	s.totalCents = subtotal + s.feeLocked()

	eta := NominalEtaMinutes
	if r := s.restaurant; r != nil {
		if eta < r.DeliveryEtaMin {
			eta = r.DeliveryEtaMin
		}
		if eta > r.DeliveryEtaMax {
			eta = r.DeliveryEtaMax
		}
	}
	s.etaMinutes = eta
}

func (s *Session) feeLocked() int {
	if s.freeDelivery {
		return 0
	}
	if s.restaurant != nil {
		return s.restaurant.DeliveryFeeCents
	}
	return DefaultDeliveryFeeCents
}

// PlaceOrder submits the current cart against the selected restaurant.
// Nil when no restaurant is selected or the backend rejects the call; the
// cart is left untouched either way.
func (s *Session) PlaceOrder(ctx context.Context, userID string) *domain.Order {
	s.mu.Lock()
	restaurant := s.restaurant
	if restaurant == nil {
		s.mu.Unlock()
		return nil
	}
	items := append([]domain.OrderItem(nil), s.cart...)
	subtotal := s.subtotalCents
	fee := s.feeLocked()
	s.mu.Unlock()

	body := domain.Order{
		ID:               domain.TempOrderID,
		UserID:           userID,
		RestaurantID:     restaurant.ID,
		Status:           "created",
		Items:            items,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: fee,
		TotalCents:       subtotal + fee,
	}
	return api.Do[domain.Order](ctx, s.client, api.CreateOrder(), body, fixtures.None)
}
