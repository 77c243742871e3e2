// Package catalog lists the storefront's products and carries the admin
// product-management operations.
package catalog

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/mkaleva/ornata/internal/common"
	"github.com/mkaleva/ornata/internal/gateway"
	"github.com/mkaleva/ornata/internal/logging"
	"github.com/mkaleva/ornata/internal/models"
	"github.com/mkaleva/ornata/internal/session"
)

// Sort modes for product listings. Featured keeps the backend's order.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

type Service struct {
	gw      gateway.Caller
	session *session.Store
	log     logging.Logger
}

func NewService(gw gateway.Caller, sess *session.Store, log logging.Logger) *Service {
	return &Service{gw: gw, session: sess, log: log}
}

// List fetches the product catalog. Wire-level alternates are normalized
// once here; callers never see them.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var resp models.WireProductList
	if err := s.gw.Call(ctx, http.MethodGet, "/admin/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Normalize(), nil
}

// Create adds a product. Admin only; the backend enforces this as well.
func (s *Service) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := s.requireAdmin(); err != nil {
		return models.Product{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, common.NewValidationError("product name is required")
	}

	var resp models.WireProduct
	if err := s.gw.Call(ctx, http.MethodPost, "/admin/products", in, &resp); err != nil {
		return models.Product{}, err
	}
	return resp.Normalize(), nil
}

// Update replaces a product's fields. Admin only.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	if err := s.requireAdmin(); err != nil {
		return models.Product{}, err
	}

	var resp models.WireProduct
	if err := s.gw.Call(ctx, http.MethodPut, "/admin/products/"+id, in, &resp); err != nil {
		return models.Product{}, err
	}
	return resp.Normalize(), nil
}

// Delete removes a product. Admin only.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	return s.gw.Call(ctx, http.MethodDelete, "/admin/products/"+id, nil, nil)
}

func (s *Service) requireAdmin() error {
	if !s.session.User().IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

// FilterByCategory keeps products in the given category; "" and "all" keep
// everything. Matching is case-insensitive.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" || strings.EqualFold(category, "all") {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a copy of products ordered by mode. Unknown modes and
// SortFeatured keep the incoming order.
func Sort(products []models.Product, mode string) []models.Product {
	out := append([]models.Product(nil), products...)
	switch mode {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

// Categories enumerates the distinct non-empty categories in catalog order.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		key := strings.ToLower(p.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
