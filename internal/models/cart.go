package models

// CartLine is one product/quantity pairing within the cart.
// Quantity is always at least one; a line dropped to zero is removed,
// never retained.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Order is the backend's record of a placed order.
type Order struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}
