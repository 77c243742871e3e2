package models

// Product is a normalized catalog entry. Wire-level alternates ("image" vs
// "imageUrl", "_id" vs "id") are resolved once at the gateway boundary.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}
