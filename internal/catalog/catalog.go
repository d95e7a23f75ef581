// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package catalog defines the product and cart types shared by the
// personalization and checkout packages, plus the read-only Provider
// capability through which the host supplies catalog data.
//
// The catalog storage layer itself is owned by the host application; this
// package only consumes it.
package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Category identifies a product category. The type is open: any string is a
// valid category, and unknown categories simply match no affinity or
// complementary rules. The storefront's seeded taxonomy is provided as
// constants.
type Category string

// Seeded storefront categories.
const (
	CategoryChairs    Category = "sillas"
	CategoryTables    Category = "mesas"
	CategoryFurniture Category = "muebles"
	CategoryLighting  Category = "iluminacion"
	CategoryDecor     Category = "decoracion"
)

// Product is a catalog record.
type Product struct {
	// ID is the unique product identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is the product description.
	Description string `json:"description,omitempty"`

	// Price is the unit price.
	Price float64 `json:"price"`

	// Category is the product category.
	Category Category `json:"category"`

	// Image is the product image path.
	Image string `json:"image,omitempty"`

	// Stock is the available stock count, if tracked.
	Stock int `json:"stock,omitempty"`
}

// CartLine is a product with the quantity present in a cart.
// Quantities of zero or less are invalid input, not an empty line; cart
// validation reports them as blocking errors.
type CartLine struct {
	// Product is the catalog record for this line.
	Product Product `json:"product"`

	// Quantity is the number of units in the cart.
	Quantity int `json:"quantity"`
}

// Cart is an ordered list of cart lines.
type Cart []CartLine

// ProductIDs returns the ids of the products in the cart, in cart order.
func (c Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c))
	for _, line := range c {
		ids = append(ids, line.Product.ID)
	}
	return ids
}

// DistinctCategories returns the cart's categories deduplicated, in
// first-discovery order over the cart lines.
func (c Cart) DistinctCategories() []Category {
	seen := make(map[Category]struct{}, len(c))
	categories := make([]Category, 0, len(c))
	for _, line := range c {
		if _, ok := seen[line.Product.Category]; ok {
			continue
		}
		seen[line.Product.Category] = struct{}{}
		categories = append(categories, line.Product.Category)
	}
	return categories
}

// Subtotal returns the total value of the cart (price times quantity,
// summed over all lines).
func (c Cart) Subtotal() float64 {
	var total float64
	for _, line := range c {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// TotalItems returns the total number of units in the cart.
func (c Cart) TotalItems() int {
	var n int
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// HasCategoryIn reports whether any cart line's category is in the given set.
func (c Cart) HasCategoryIn(categories []Category) bool {
	set := make(map[Category]struct{}, len(categories))
	for _, cat := range categories {
		set[cat] = struct{}{}
	}
	for _, line := range c {
		if _, ok := set[line.Product.Category]; ok {
			return true
		}
	}
	return false
}

// Provider supplies read-only catalog access. Implemented by the host
// application's storage layer.
type Provider interface {
	// Products returns all catalog products.
	Products(ctx context.Context) ([]Product, error)
}

// StaticProvider is a Provider over a fixed in-memory product list.
// Used in tests and by the CLI after loading a catalog file.
type StaticProvider struct {
	products []Product
}

// NewStaticProvider creates a provider over the given products.
// The slice is copied; later mutation of the argument has no effect.
func NewStaticProvider(products []Product) *StaticProvider {
	cp := make([]Product, len(products))
	copy(cp, products)
	return &StaticProvider{products: cp}
}

// Products returns a copy of the product list.
func (p *StaticProvider) Products(_ context.Context) ([]Product, error) {
	cp := make([]Product, len(p.products))
	copy(cp, p.products)
	return cp, nil
}

// LoadFile reads a JSON catalog file (an array of products) and returns a
// provider over its contents.
func LoadFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	return NewStaticProvider(products), nil
}
