package cli

import (
	"context"
	"fmt"
	"strconv"
)

// ShowCart refreshes the cart from the backend and prints its lines.
func (a *App) ShowCart(ctx context.Context) error {
	if err := a.cart.Fetch(ctx); err != nil {
		printlnFn("Could not load cart:", err.Error())
		return err
	}

	items := a.cart.Items()
	if len(items) == 0 {
		printlnFn("Cart is empty")
		return nil
	}

	for _, it := range items {
		printlnFn(fmt.Sprintf("%-26s %-22s %3d x %8.2f", it.Product.ID, it.Product.Name, it.Quantity, it.Product.Price))
	}
	printlnFn(fmt.Sprintf("Total: %.2f (%d items)", a.cart.Total(), a.cart.Count()))
	return nil
}

// AddToCart adds a product by id; args: <product-id> [quantity].
func (a *App) AddToCart(ctx context.Context, args []string) error {
	quantity := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			printlnFn("Quantity must be a number")
			return err
		}
		quantity = n
	}

	if err := a.cart.Add(ctx, args[0], quantity); err != nil {
		printlnFn("Could not add to cart:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Added. Cart now holds %d item(s), total %.2f", a.cart.Count(), a.cart.Total()))
	return nil
}

// RemoveFromCart drops a product's line; args: <product-id>.
func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	if err := a.cart.Remove(ctx, args[0]); err != nil {
		printlnFn("Could not remove from cart:", err.Error())
		return err
	}
	printlnFn("Removed")
	return nil
}

// SetQuantity changes a line's quantity; args: <product-id> <quantity>.
func (a *App) SetQuantity(ctx context.Context, args []string) error {
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Quantity must be a number")
		return err
	}

	if err := a.cart.UpdateQuantity(ctx, args[0], quantity); err != nil {
		printlnFn("Could not update quantity:", err.Error())
		return err
	}
	printlnFn("Updated")
	return nil
}

// ClearCart empties the cart.
func (a *App) ClearCart(ctx context.Context) error {
	if err := a.cart.Clear(ctx); err != nil {
		printlnFn("Could not clear cart:", err.Error())
		return err
	}
	printlnFn("Cart cleared")
	return nil
}
