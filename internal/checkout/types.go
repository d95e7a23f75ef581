// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package checkout implements the stateless rule cascades evaluated at
// checkout time: volume discounts, delivery estimates, cart validation,
// and complementary-category lookup.
//
// Every function is pure and deterministic given its inputs, never returns
// an error, and degrades to the most conservative output when configuration
// is missing (zero discount, the extended delivery tier).
package checkout

import (
	"github.com/raremagic/shopintel/internal/catalog"
)

// VolumeDiscountTier is a threshold-based price-reduction rule.
type VolumeDiscountTier struct {
	// Threshold is the minimum subtotal for the tier to apply.
	Threshold float64 `json:"threshold" koanf:"threshold"`

	// Discount is the price reduction as a fraction (0.05 = 5%).
	Discount float64 `json:"discount" koanf:"discount"`

	// Label describes the tier for display.
	Label string `json:"label" koanf:"label"`
}

// DeliveryTier bounds one delivery speed class.
type DeliveryTier struct {
	// MaxItems is the maximum unit count the tier accepts.
	MaxItems int `json:"max_items" koanf:"max_items"`

	// MaxLargeItems is the maximum number of large items the tier accepts.
	MaxLargeItems int `json:"max_large_items" koanf:"max_large_items"`

	// Label is the delivery window shown to the shopper.
	Label string `json:"label" koanf:"label"`
}

// DeliveryTiers holds the three named tiers, evaluated fast-first.
type DeliveryTiers struct {
	// Fast is the quickest tier; disqualified by any large item.
	Fast DeliveryTier `json:"fast" koanf:"fast"`

	// Standard is the middle tier.
	Standard DeliveryTier `json:"standard" koanf:"standard"`

	// Extended is the unbounded fallback tier.
	Extended DeliveryTier `json:"extended" koanf:"extended"`
}

// ValidationResult is the outcome of cart validation. Only errors block the
// checkout; warnings and messages are advisory.
type ValidationResult struct {
	// IsValid is true when the cart has no blocking errors.
	IsValid bool `json:"is_valid"`

	// Messages are advisory suggestions (complements, discount shortfall).
	Messages []string `json:"messages"`

	// Warnings are non-blocking issues (quantities above the per-item max).
	Warnings []string `json:"warnings"`

	// Errors are blocking issues (non-positive quantities).
	Errors []string `json:"errors"`
}

// Config carries the checkout rule tables. All of it is versioned external
// configuration; DefaultConfig returns the storefront's seeded values.
type Config struct {
	// VolumeDiscounts lists the discount tiers.
	VolumeDiscounts []VolumeDiscountTier `json:"volume_discounts" koanf:"volume_discounts"`

	// Delivery holds the delivery tiers.
	Delivery DeliveryTiers `json:"delivery" koanf:"delivery"`

	// LargeItemCategories lists the categories treated as large for
	// delivery estimation.
	LargeItemCategories []catalog.Category `json:"large_item_categories" koanf:"large_item_categories"`

	// MaxQuantityPerItem triggers a warning above this per-line quantity.
	// Zero disables the check.
	MaxQuantityPerItem int `json:"max_quantity_per_item" koanf:"max_quantity_per_item"`

	// MinCartValueForDiscounts triggers a shortfall message below this
	// subtotal. Zero disables the check.
	MinCartValueForDiscounts float64 `json:"min_cart_value_for_discounts" koanf:"min_cart_value_for_discounts"`

	// SeatingCategory and SurfaceCategory drive the pairing advisory
	// (seating without a surface and vice versa).
	SeatingCategory catalog.Category `json:"seating_category" koanf:"seating_category"`
	SurfaceCategory catalog.Category `json:"surface_category" koanf:"surface_category"`

	// Complementary maps each category to its ordered complementary
	// category list.
	Complementary map[catalog.Category][]catalog.Category `json:"complementary" koanf:"complementary"`
}

// DefaultConfig returns the storefront's seeded checkout rules.
func DefaultConfig() Config {
	return Config{
		VolumeDiscounts: []VolumeDiscountTier{
			{Threshold: 500, Discount: 0.05, Label: "5% descuento por compra mayor a $500"},
			{Threshold: 1000, Discount: 0.10, Label: "10% descuento por compra mayor a $1000"},
			{Threshold: 2000, Discount: 0.15, Label: "15% descuento por compra mayor a $2000"},
		},
		Delivery:                 DefaultDeliveryTiers(),
		LargeItemCategories:      []catalog.Category{catalog.CategoryFurniture, catalog.CategoryTables},
		MaxQuantityPerItem:       5,
		MinCartValueForDiscounts: 100,
		SeatingCategory:          catalog.CategoryChairs,
		SurfaceCategory:          catalog.CategoryTables,
		Complementary: map[catalog.Category][]catalog.Category{
			catalog.CategoryChairs:    {catalog.CategoryTables, catalog.CategoryLighting},
			catalog.CategoryTables:    {catalog.CategoryChairs, catalog.CategoryDecor},
			catalog.CategoryFurniture: {catalog.CategoryLighting, catalog.CategoryDecor},
			catalog.CategoryLighting:  {catalog.CategoryFurniture, catalog.CategoryDecor},
			catalog.CategoryDecor:     {catalog.CategoryFurniture, catalog.CategoryLighting},
		},
	}
}

// DefaultDeliveryTiers returns the seeded delivery tiers.
func DefaultDeliveryTiers() DeliveryTiers {
	return DeliveryTiers{
		Fast:     DeliveryTier{MaxItems: 2, MaxLargeItems: 0, Label: "2-3 días hábiles"},
		Standard: DeliveryTier{MaxItems: 5, MaxLargeItems: 1, Label: "5-7 días hábiles"},
		Extended: DeliveryTier{MaxItems: 0, MaxLargeItems: 0, Label: "7-10 días hábiles"},
	}
}
