package models

import "encoding/json"

// Wire shapes as the backend actually sends them. Several concepts have
// historical alternate spellings (Mongo-style "_id", "image" vs "imageUrl",
// a bare array vs a "products" envelope). The Normalize methods resolve the
// alternates once, at the gateway boundary, so nothing downstream re-checks.

// WireAuth is the /auth/signup and /auth/signin response shape. Token is
// required; the backend returns either a full User or only a UserID.
type WireAuth struct {
	Token  string    `json:"token"`
	User   *WireUser `json:"user"`
	UserID string    `json:"userId"`
}

type WireUser struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

func (w WireUser) Normalize() User {
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	role := w.Role
	if role == "" {
		role = RoleUser
	}
	return User{ID: id, Name: w.Name, Email: w.Email, Role: role}
}

// WireProfile is the /auth/profile response: either the bare identity or the
// identity wrapped in a "user" field.
type WireProfile struct {
	WireUser
	User *WireUser `json:"user"`
}

func (w WireProfile) Normalize() User {
	if w.User != nil {
		return w.User.Normalize()
	}
	return w.WireUser.Normalize()
}

type WireProduct struct {
	ID          string  `json:"id"`
	MongoID     string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

func (w WireProduct) Normalize() Product {
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	img := w.ImageURL
	if img == "" {
		img = w.Image
	}
	return Product{
		ID:          id,
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		ImageURL:    img,
		Category:    w.Category,
		Stock:       w.Stock,
	}
}

// WireProductList accepts both response forms of the product listing:
// {"products": [...]} and a bare JSON array.
type WireProductList struct {
	Products []WireProduct
}

func (w *WireProductList) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Products []WireProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		w.Products = envelope.Products
		return nil
	}

	var bare []WireProduct
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	w.Products = bare
	return nil
}

func (w WireProductList) Normalize() []Product {
	products := make([]Product, 0, len(w.Products))
	for _, p := range w.Products {
		products = append(products, p.Normalize())
	}
	return products
}

// WireCartLine carries either a nested product object or the product fields
// flattened onto the line itself.
type WireCartLine struct {
	Product   *WireProduct `json:"product"`
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Price     float64      `json:"price"`
	ImageURL  string       `json:"imageUrl"`
	Image     string       `json:"image"`
	Quantity  int          `json:"quantity"`
}

func (w WireCartLine) Normalize() CartLine {
	if w.Product != nil {
		return CartLine{Product: w.Product.Normalize(), Quantity: w.Quantity}
	}
	img := w.ImageURL
	if img == "" {
		img = w.Image
	}
	return CartLine{
		Product:  Product{ID: w.ProductID, Name: w.Name, Price: w.Price, ImageURL: img},
		Quantity: w.Quantity,
	}
}

// WireCart is the GET /cart response.
type WireCart struct {
	Items []WireCartLine `json:"items"`
}

func (w WireCart) Normalize() []CartLine {
	lines := make([]CartLine, 0, len(w.Items))
	for _, it := range w.Items {
		lines = append(lines, it.Normalize())
	}
	return lines
}

// WireOrder is the /orders response shape.
type WireOrder struct {
	ID      string  `json:"id"`
	MongoID string  `json:"_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

func (w WireOrder) Normalize() Order {
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	return Order{ID: id, Status: w.Status, Total: w.Total}
}
