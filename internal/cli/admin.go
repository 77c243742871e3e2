package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/mkaleva/ornata/internal/catalog"
)

// promptProduct interactively collects the admin create/update payload.
func (a *App) promptProduct() (catalog.ProductInput, error) {
	var in catalog.ProductInput

	name, err := getSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		return in, err
	}
	in.Name = name

	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return in, err
	}
	in.Description = description

	priceText, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return in, err
	}
	if priceText != "" {
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil {
			printlnFn("Price must be a number")
			return in, err
		}
		in.Price = price
	}

	in.ImageURL, err = getSimpleText(a.reader, "Image URL", os.Stdout)
	if err != nil {
		return in, err
	}

	in.Category, err = getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return in, err
	}

	stockText, err := getSimpleText(a.reader, "Stock", os.Stdout)
	if err != nil {
		return in, err
	}
	if stockText != "" {
		stock, err := strconv.Atoi(stockText)
		if err != nil {
			printlnFn("Stock must be a number")
			return in, err
		}
		in.Stock = stock
	}

	return in, nil
}

// AddProduct interactively creates a catalog product. Admin only.
func (a *App) AddProduct(ctx context.Context) error {
	in, err := a.promptProduct()
	if err != nil {
		return err
	}

	created, err := a.catalog.Create(ctx, in)
	if err != nil {
		printlnFn("Could not create product:", err.Error())
		return err
	}

	printlnFn("Created product", created.ID)
	return nil
}

// EditProduct interactively updates a catalog product; args: <product-id>.
// Admin only.
func (a *App) EditProduct(ctx context.Context, args []string) error {
	in, err := a.promptProduct()
	if err != nil {
		return err
	}

	updated, err := a.catalog.Update(ctx, args[0], in)
	if err != nil {
		printlnFn("Could not update product:", err.Error())
		return err
	}

	printlnFn("Updated product", updated.ID)
	return nil
}

// DeleteProduct removes a catalog product; args: <product-id>. Admin only.
func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	if err := a.catalog.Delete(ctx, args[0]); err != nil {
		printlnFn("Could not delete product:", err.Error())
		return err
	}
	printlnFn("Deleted product", args[0])
	return nil
}
