// Package checkout places orders for the current cart contents.
package checkout

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkaleva/ornata/internal/cart"
	"github.com/mkaleva/ornata/internal/challenge"
	"github.com/mkaleva/ornata/internal/common"
	"github.com/mkaleva/ornata/internal/gateway"
	"github.com/mkaleva/ornata/internal/logging"
	"github.com/mkaleva/ornata/internal/models"
	"github.com/mkaleva/ornata/internal/session"
)

// Method selects the payment flow.
type Method string

const (
	MethodCOD    Method = "cod"
	MethodOnline Method = "online"
)

// Address is the shipping destination for an order.
type Address struct {
	FullName   string `json:"fullName"`
	Line1      string `json:"addressLine1"`
	Line2      string `json:"addressLine2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type orderRequest struct {
	Address        Address `json:"address"`
	ChallengeToken string  `json:"recaptchaToken,omitempty"`
}

type Service struct {
	gw        gateway.Caller
	session   *session.Store
	cart      *cart.Store
	challenge challenge.Provider
	log       logging.Logger
}

func NewService(gw gateway.Caller, sess *session.Store, cartStore *cart.Store, ch challenge.Provider, log logging.Logger) *Service {
	return &Service{gw: gw, session: sess, cart: cartStore, challenge: ch, log: log}
}

// Place submits the current cart as an order with the given shipping address.
// Checkout completion empties the local cart and closes the cart panel.
func (s *Service) Place(ctx context.Context, method Method, addr Address) (models.Order, error) {
	if s.session.User() == nil {
		return models.Order{}, common.ErrNotSignedIn
	}
	if err := validateAddress(addr); err != nil {
		return models.Order{}, err
	}
	if s.cart.Count() == 0 {
		return models.Order{}, common.NewValidationError("cart is empty")
	}

	endpoint := "/orders/cod"
	if method == MethodOnline {
		endpoint = "/orders/online"
	}

	payload := orderRequest{Address: addr}
	payload.ChallengeToken = s.challenge.Token(ctx, "checkout")

	var resp models.WireOrder
	if err := s.gw.Call(ctx, http.MethodPost, endpoint, payload, &resp); err != nil {
		return models.Order{}, err
	}

	s.cart.Reset()
	s.log.Info(ctx, "order placed", "method", string(method), "order_id", resp.Normalize().ID)
	return resp.Normalize(), nil
}

func validateAddress(a Address) error {
	required := []struct {
		value string
		field string
	}{
		{a.FullName, "full name"},
		{a.Line1, "address line"},
		{a.City, "city"},
		{a.PostalCode, "postal code"},
		{a.Country, "country"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return common.NewValidationError(r.field + " is required")
		}
	}
	return nil
}
