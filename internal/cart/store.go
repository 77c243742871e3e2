// Package cart owns the backend-synchronized cart for the authenticated
// user. Every mutation round-trips through the backend and then re-fetches
// authoritative state; the local copy is never a client-side merge.
package cart

import (
	"context"
	"net/http"
	"sync"

	"github.com/mkaleva/ornata/internal/common"
	"github.com/mkaleva/ornata/internal/gateway"
	"github.com/mkaleva/ornata/internal/logging"
	"github.com/mkaleva/ornata/internal/models"
	"github.com/mkaleva/ornata/internal/session"
)

// Store holds the local cart copy and the cart panel's open/closed state.
type Store struct {
	gw      gateway.Caller
	session *session.Store
	log     logging.Logger

	mu    sync.Mutex
	items []models.CartLine
	open  bool

	unsubscribe func()
}

// NewStore wires a cart store into the session store's lifecycle: the cart is
// fetched on sign-in and reset on sign-out. Call Close to release the
// subscription.
func NewStore(gw gateway.Caller, sess *session.Store, log logging.Logger) *Store {
	s := &Store{gw: gw, session: sess, log: log}
	s.unsubscribe = sess.Subscribe(func(ev session.Event) {
		switch ev {
		case session.SignedIn:
			if err := s.Fetch(context.Background()); err != nil {
				s.log.Warn(context.Background(), "cart fetch after sign-in failed", "error", err)
			}
		case session.SignedOut:
			s.Reset()
		}
	})
	return s
}

// Close releases the session subscription.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Fetch replaces the local cart wholesale with the backend's state. Without a
// session it is a no-op. An authentication-class failure clears the local
// cart rather than leaving stale lines behind.
func (s *Store) Fetch(ctx context.Context) error {
	if s.session.User() == nil {
		return nil
	}

	var resp models.WireCart
	if err := s.gw.Call(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		if gateway.IsAuthError(err) {
			s.mu.Lock()
			s.items = nil
			s.mu.Unlock()
		}
		return err
	}

	items := resp.Normalize()
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add puts quantity units of a product in the cart, then re-fetches the
// authoritative state (the backend may cap against stock). On success the
// cart panel opens.
func (s *Store) Add(ctx context.Context, productID string, quantity int) error {
	if s.session.User() == nil {
		return common.ErrNotSignedIn
	}
	if quantity < 1 {
		quantity = 1
	}

	payload := map[string]any{"productId": productID, "quantity": quantity}
	if err := s.gw.Call(ctx, http.MethodPost, "/cart/add", payload, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.open = true
	s.mu.Unlock()

	return s.Fetch(ctx)
}

// Remove deletes a product's line from the cart and re-fetches.
func (s *Store) Remove(ctx context.Context, productID string) error {
	if s.session.User() == nil {
		return common.ErrNotSignedIn
	}

	payload := map[string]string{"productId": productID}
	if err := s.gw.Call(ctx, http.MethodDelete, "/cart/remove", payload, nil); err != nil {
		return err
	}

	return s.Fetch(ctx)
}

// UpdateQuantity sets the quantity for a product's line and re-fetches.
// Quantities below one are ignored without a network call; dropping a line
// goes through Remove instead.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if s.session.User() == nil {
		return common.ErrNotSignedIn
	}
	if quantity < 1 {
		return nil
	}

	payload := map[string]any{"productId": productID, "quantity": quantity}
	if err := s.gw.Call(ctx, http.MethodPut, "/cart/update", payload, nil); err != nil {
		return err
	}

	return s.Fetch(ctx)
}

// Clear empties the cart on the backend and locally. No re-fetch is needed
// since the result is known.
func (s *Store) Clear(ctx context.Context) error {
	if s.session.User() == nil {
		return common.ErrNotSignedIn
	}

	if err := s.gw.Call(ctx, http.MethodDelete, "/cart/clear", nil, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	return nil
}

// Reset drops local state only: empty cart, panel closed. Used on sign-out
// and after checkout completion.
func (s *Store) Reset() {
	s.mu.Lock()
	s.items = nil
	s.open = false
	s.mu.Unlock()
}

// Items returns a copy of the current cart lines in stable display order.
func (s *Store) Items() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLine(nil), s.items...)
}

// Count is the sum of quantities across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total is the subtotal: unit price times quantity summed over all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, it := range s.items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum
}

// IsOpen reports whether the cart panel is open.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// OpenPanel opens the cart panel.
func (s *Store) OpenPanel() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// ClosePanel closes the cart panel.
func (s *Store) ClosePanel() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// TogglePanel flips the cart panel's open state.
func (s *Store) TogglePanel() {
	s.mu.Lock()
	s.open = !s.open
	s.mu.Unlock()
}
