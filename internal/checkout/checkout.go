// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package checkout

import (
	"fmt"

	"github.com/raremagic/shopintel/internal/catalog"
)

// CalculateVolumeDiscount returns the discount fraction for the given
// subtotal: the highest discount among tiers whose threshold the subtotal
// meets, or 0 when no tier applies or the tier list is empty.
func CalculateVolumeDiscount(subtotal float64, tiers []VolumeDiscountTier) float64 {
	best := 0.0
	for _, tier := range tiers {
		if subtotal >= tier.Threshold && tier.Discount > best {
			best = tier.Discount
		}
	}
	return best
}

// EstimateDeliveryTime returns the delivery estimate for a cart with the
// given unit count and large-item presence. Missing tier configuration
// resolves to the default extended tier.
func EstimateDeliveryTime(totalItems int, hasLargeItems bool, tiers DeliveryTiers) string {
	if tiers == (DeliveryTiers{}) {
		return deliveryEstimate(DefaultDeliveryTiers().Extended.Label)
	}
	if totalItems <= tiers.Fast.MaxItems && !hasLargeItems {
		return deliveryEstimate(tiers.Fast.Label)
	}
	if totalItems <= tiers.Standard.MaxItems || hasLargeItems {
		return deliveryEstimate(tiers.Standard.Label)
	}
	return deliveryEstimate(tiers.Extended.Label)
}

func deliveryEstimate(label string) string {
	return "Entrega en " + label
}

// HasLargeItems reports whether any cart line belongs to one of the
// configured large-item categories.
func HasLargeItems(cart catalog.Cart, largeCategories []catalog.Category) bool {
	return cart.HasCategoryIn(largeCategories)
}

// ValidateCart checks every cart line against the configured limits and
// returns blocking errors, non-blocking warnings, and advisory messages.
// It always produces a result; it never fails.
func ValidateCart(cart catalog.Cart, cfg Config) ValidationResult {
	res := ValidationResult{}

	for _, line := range cart {
		if line.Quantity <= 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Cantidad inválida para %s", line.Product.Name))
			continue
		}
		if cfg.MaxQuantityPerItem > 0 && line.Quantity > cfg.MaxQuantityPerItem {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Cantidad alta para %s - verificar disponibilidad", line.Product.Name))
		}
	}

	hasSeating := cartHasCategory(cart, cfg.SeatingCategory)
	hasSurface := cartHasCategory(cart, cfg.SurfaceCategory)
	if hasSeating && !hasSurface {
		res.Messages = append(res.Messages, "💡 Considera agregar una mesa para complementar las sillas")
	}
	if hasSurface && !hasSeating {
		res.Messages = append(res.Messages, "💡 Considera agregar sillas para complementar la mesa")
	}

	if cfg.MinCartValueForDiscounts > 0 {
		if subtotal := cart.Subtotal(); subtotal < cfg.MinCartValueForDiscounts {
			shortfall := cfg.MinCartValueForDiscounts - subtotal
			res.Messages = append(res.Messages, fmt.Sprintf("Agrega $%g más para obtener descuentos", shortfall))
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// ComplementaryCategories returns the deduplicated union of the complementary
// categories of every category present in the cart, ordered by when each cart
// category was first seen and, within one, by the configured rule order.
// Categories already present in the cart are not excluded.
func ComplementaryCategories(cart catalog.Cart, complementary map[catalog.Category][]catalog.Category) []catalog.Category {
	seen := make(map[catalog.Category]struct{})
	var out []catalog.Category
	for _, cat := range cart.DistinctCategories() {
		for _, comp := range complementary[cat] {
			if _, ok := seen[comp]; ok {
				continue
			}
			seen[comp] = struct{}{}
			out = append(out, comp)
		}
	}
	return out
}

func cartHasCategory(cart catalog.Cart, cat catalog.Category) bool {
	if cat == "" {
		return false
	}
	for _, line := range cart {
		if line.Product.Category == cat {
			return true
		}
	}
	return false
}
