package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mkaleva/ornata/internal/checkout"
)

// Checkout prompts for a shipping address and payment method, then places
// an order for the current cart contents.
func (a *App) Checkout(ctx context.Context) error {
	var addr checkout.Address

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Full name", &addr.FullName},
		{"Address line 1", &addr.Line1},
		{"Address line 2 (optional)", &addr.Line2},
		{"City", &addr.City},
		{"State/region (optional)", &addr.State},
		{"Postal code", &addr.PostalCode},
		{"Country", &addr.Country},
		{"Phone (optional)", &addr.Phone},
	}

	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, os.Stdout)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	methodInput, err := getSimpleText(a.reader, "Payment method: cod or online (default cod)", os.Stdout)
	if err != nil {
		return err
	}
	method := checkout.MethodCOD
	if methodInput == string(checkout.MethodOnline) {
		method = checkout.MethodOnline
	}

	order, err := a.checkout.Place(ctx, method, addr)
	if err != nil {
		printlnFn("Checkout failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Order %s placed, status %q, total %.2f", order.ID, order.Status, order.Total))
	return nil
}
