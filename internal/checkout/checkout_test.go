// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package checkout

import (
	"strings"
	"testing"

	"github.com/raremagic/shopintel/internal/catalog"
)

func line(id string, cat catalog.Category, price float64, qty int) catalog.CartLine {
	return catalog.CartLine{
		Product:  catalog.Product{ID: id, Name: "Producto " + id, Category: cat, Price: price, Stock: 10},
		Quantity: qty,
	}
}

func TestCalculateVolumeDiscount(t *testing.T) {
	t.Parallel()

	tiers := DefaultConfig().VolumeDiscounts

	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{name: "below first threshold", subtotal: 499, want: 0},
		{name: "exactly first threshold", subtotal: 500, want: 0.05},
		{name: "middle tier", subtotal: 1500, want: 0.10},
		{name: "top tier", subtotal: 2500, want: 0.15},
		{name: "zero subtotal", subtotal: 0, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CalculateVolumeDiscount(tt.subtotal, tiers); got != tt.want {
				t.Errorf("CalculateVolumeDiscount(%v) = %v, want %v", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestCalculateVolumeDiscountNoTiers(t *testing.T) {
	t.Parallel()

	if got := CalculateVolumeDiscount(10000, nil); got != 0 {
		t.Errorf("CalculateVolumeDiscount with no tiers = %v, want 0", got)
	}
}

func TestCalculateVolumeDiscountUnorderedTiers(t *testing.T) {
	t.Parallel()

	// The highest applicable discount must win regardless of tier order.
	tiers := []VolumeDiscountTier{
		{Threshold: 2000, Discount: 0.15},
		{Threshold: 500, Discount: 0.05},
		{Threshold: 1000, Discount: 0.10},
	}
	if got := CalculateVolumeDiscount(2500, tiers); got != 0.15 {
		t.Errorf("CalculateVolumeDiscount(2500) = %v, want 0.15", got)
	}
}

func TestEstimateDeliveryTime(t *testing.T) {
	t.Parallel()

	tiers := DefaultDeliveryTiers()

	tests := []struct {
		name     string
		items    int
		hasLarge bool
		want     string
	}{
		{name: "small cart fast", items: 2, hasLarge: false, want: "Entrega en " + tiers.Fast.Label},
		{name: "large item forces standard", items: 2, hasLarge: true, want: "Entrega en " + tiers.Standard.Label},
		{name: "mid cart standard", items: 3, hasLarge: false, want: "Entrega en " + tiers.Standard.Label},
		{name: "large cart with large item standard", items: 8, hasLarge: true, want: "Entrega en " + tiers.Standard.Label},
		{name: "large cart extended", items: 6, hasLarge: false, want: "Entrega en " + tiers.Extended.Label},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EstimateDeliveryTime(tt.items, tt.hasLarge, tiers); got != tt.want {
				t.Errorf("EstimateDeliveryTime(%d, %v) = %q, want %q", tt.items, tt.hasLarge, got, tt.want)
			}
		})
	}
}

func TestEstimateDeliveryTimeMissingConfig(t *testing.T) {
	t.Parallel()

	got := EstimateDeliveryTime(1, false, DeliveryTiers{})
	if want := "Entrega en " + DefaultDeliveryTiers().Extended.Label; got != want {
		t.Errorf("EstimateDeliveryTime with empty tiers = %q, want %q", got, want)
	}
}

func TestHasLargeItems(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cart := catalog.Cart{
		line("p1", catalog.CategoryChairs, 100, 1),
		line("p2", catalog.CategoryTables, 300, 1),
	}
	if !HasLargeItems(cart, cfg.LargeItemCategories) {
		t.Error("expected table to count as a large item")
	}

	small := catalog.Cart{line("p3", catalog.CategoryDecor, 40, 2)}
	if HasLargeItems(small, cfg.LargeItemCategories) {
		t.Error("decor cart should have no large items")
	}
}

func TestValidateCartQuantities(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	t.Run("non-positive quantity is an error", func(t *testing.T) {
		t.Parallel()
		res := ValidateCart(catalog.Cart{line("p1", catalog.CategoryDecor, 500, 0)}, cfg)
		if res.IsValid {
			t.Error("cart with zero quantity should be invalid")
		}
		if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Cantidad inválida") {
			t.Errorf("unexpected errors: %v", res.Errors)
		}
	})

	t.Run("excess quantity is only a warning", func(t *testing.T) {
		t.Parallel()
		res := ValidateCart(catalog.Cart{line("p1", catalog.CategoryDecor, 500, 6)}, cfg)
		if !res.IsValid {
			t.Errorf("warnings must not invalidate the cart: %v", res.Errors)
		}
		if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "Cantidad alta") {
			t.Errorf("unexpected warnings: %v", res.Warnings)
		}
	})

	t.Run("quantity at the limit passes", func(t *testing.T) {
		t.Parallel()
		res := ValidateCart(catalog.Cart{line("p1", catalog.CategoryDecor, 500, 5)}, cfg)
		if !res.IsValid || len(res.Warnings) != 0 {
			t.Errorf("quantity 5 should be clean: %+v", res)
		}
	})
}

func TestValidateCartPairingAdvisories(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	t.Run("chairs without a table", func(t *testing.T) {
		t.Parallel()
		res := ValidateCart(catalog.Cart{line("p1", catalog.CategoryChairs, 150, 2)}, cfg)
		if !containsSubstring(res.Messages, "agregar una mesa") {
			t.Errorf("expected table suggestion, got %v", res.Messages)
		}
	})

	t.Run("table without chairs", func(t *testing.T) {
		t.Parallel()
		res := ValidateCart(catalog.Cart{line("p1", catalog.CategoryTables, 400, 1)}, cfg)
		if !containsSubstring(res.Messages, "agregar sillas") {
			t.Errorf("expected chair suggestion, got %v", res.Messages)
		}
	})

	t.Run("both present yields no pairing advisory", func(t *testing.T) {
		t.Parallel()
		cart := catalog.Cart{
			line("p1", catalog.CategoryChairs, 150, 2),
			line("p2", catalog.CategoryTables, 400, 1),
		}
		res := ValidateCart(cart, cfg)
		if containsSubstring(res.Messages, "Considera agregar") {
			t.Errorf("unexpected pairing advisory: %v", res.Messages)
		}
	})
}

func TestValidateCartDiscountShortfall(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	res := ValidateCart(catalog.Cart{line("p1", catalog.CategoryDecor, 30, 2)}, cfg)
	if !containsSubstring(res.Messages, "Agrega $40 más") {
		t.Errorf("expected exact shortfall message, got %v", res.Messages)
	}

	// A zero-value cart is the full minimum short.
	res = ValidateCart(catalog.Cart{line("p1", catalog.CategoryDecor, 0, 1)}, cfg)
	if !containsSubstring(res.Messages, "Agrega $100 más") {
		t.Errorf("expected full shortfall for zero-value cart, got %v", res.Messages)
	}

	res = ValidateCart(catalog.Cart{line("p1", catalog.CategoryDecor, 50, 2)}, cfg)
	if containsSubstring(res.Messages, "Agrega") {
		t.Errorf("subtotal at the minimum should have no shortfall message: %v", res.Messages)
	}
}

func TestValidateCartEmpty(t *testing.T) {
	t.Parallel()

	res := ValidateCart(nil, DefaultConfig())
	if !res.IsValid {
		t.Error("empty cart should be valid")
	}
	if len(res.Warnings) != 0 || len(res.Errors) != 0 {
		t.Errorf("empty cart should have no warnings or errors: %+v", res)
	}
	// The subtotal is below the discount minimum, so the shortfall
	// advisory still applies.
	if len(res.Messages) != 1 || !containsSubstring(res.Messages, "Agrega $100 más") {
		t.Errorf("expected only the shortfall advisory, got %v", res.Messages)
	}
}

func TestComplementaryCategories(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	t.Run("single category", func(t *testing.T) {
		t.Parallel()
		cart := catalog.Cart{line("p1", catalog.CategoryChairs, 150, 1)}
		got := ComplementaryCategories(cart, cfg.Complementary)
		want := []catalog.Category{catalog.CategoryTables, catalog.CategoryLighting}
		assertCategories(t, got, want)
	})

	t.Run("union preserves discovery order and deduplicates", func(t *testing.T) {
		t.Parallel()
		cart := catalog.Cart{
			line("p1", catalog.CategoryChairs, 150, 1),
			line("p2", catalog.CategoryTables, 400, 1),
		}
		got := ComplementaryCategories(cart, cfg.Complementary)
		// sillas contributes mesas+iluminacion, mesas contributes
		// sillas+decoracion; no repeats.
		want := []catalog.Category{
			catalog.CategoryTables,
			catalog.CategoryLighting,
			catalog.CategoryChairs,
			catalog.CategoryDecor,
		}
		assertCategories(t, got, want)
	})

	t.Run("unknown category yields nothing", func(t *testing.T) {
		t.Parallel()
		cart := catalog.Cart{line("p1", catalog.Category("alfombras"), 90, 1)}
		if got := ComplementaryCategories(cart, cfg.Complementary); len(got) != 0 {
			t.Errorf("expected no complements, got %v", got)
		}
	})
}

func assertCategories(t *testing.T, got, want []catalog.Category) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got, want)
		}
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
