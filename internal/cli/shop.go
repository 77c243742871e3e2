package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkaleva/ornata/internal/catalog"
)

// Shop lists the catalog. Optional args: a category name (or "all") and a
// sort mode (featured, price-low, price-high, name).
func (a *App) Shop(ctx context.Context, args []string) error {
	products, err := a.catalog.List(ctx)
	if err != nil {
		printlnFn("Could not load products:", err.Error())
		return err
	}

	category := ""
	mode := catalog.SortFeatured
	for _, arg := range args {
		switch arg {
		case catalog.SortFeatured, catalog.SortPriceLow, catalog.SortPriceHigh, catalog.SortName:
			mode = arg
		default:
			category = arg
		}
	}

	shown := catalog.Sort(catalog.FilterByCategory(products, category), mode)
	if len(shown) == 0 {
		printlnFn("No products found")
		return nil
	}

	if cats := catalog.Categories(products); len(cats) > 0 {
		printlnFn("Categories:", strings.Join(cats, ", "))
	}
	for _, p := range shown {
		stock := ""
		if p.Stock == 0 {
			stock = "  (out of stock)"
		}
		printlnFn(fmt.Sprintf("%-26s %-22s %10.2f%s", p.ID, p.Name, p.Price, stock))
	}
	return nil
}
