// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func testCart() Cart {
	return Cart{
		{Product: Product{ID: "p1", Price: 100, Category: CategoryChairs}, Quantity: 2},
		{Product: Product{ID: "p2", Price: 250, Category: CategoryTables}, Quantity: 1},
		{Product: Product{ID: "p3", Price: 40, Category: CategoryChairs}, Quantity: 3},
	}
}

func TestCartProductIDs(t *testing.T) {
	t.Parallel()

	ids := testCart().ProductIDs()
	want := []string{"p1", "p2", "p3"}
	if len(ids) != len(want) {
		t.Fatalf("ProductIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ProductIDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestCartDistinctCategories(t *testing.T) {
	t.Parallel()

	cats := testCart().DistinctCategories()
	want := []Category{CategoryChairs, CategoryTables}
	if len(cats) != len(want) {
		t.Fatalf("DistinctCategories() = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("DistinctCategories()[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestCartSubtotalAndItems(t *testing.T) {
	t.Parallel()

	cart := testCart()
	if got := cart.Subtotal(); got != 570 {
		t.Errorf("Subtotal() = %v, want 570", got)
	}
	if got := cart.TotalItems(); got != 6 {
		t.Errorf("TotalItems() = %d, want 6", got)
	}

	var empty Cart
	if got := empty.Subtotal(); got != 0 {
		t.Errorf("empty Subtotal() = %v, want 0", got)
	}
	if got := empty.TotalItems(); got != 0 {
		t.Errorf("empty TotalItems() = %d, want 0", got)
	}
}

func TestCartHasCategoryIn(t *testing.T) {
	t.Parallel()

	cart := testCart()
	if !cart.HasCategoryIn([]Category{CategoryFurniture, CategoryTables}) {
		t.Error("HasCategoryIn() = false, want true for mesas")
	}
	if cart.HasCategoryIn([]Category{CategoryLighting}) {
		t.Error("HasCategoryIn() = true, want false for iluminacion")
	}
	if cart.HasCategoryIn(nil) {
		t.Error("HasCategoryIn(nil) = true, want false")
	}
}

func TestStaticProviderCopies(t *testing.T) {
	t.Parallel()

	src := []Product{{ID: "p1", Price: 10}}
	p := NewStaticProvider(src)
	src[0].ID = "mutated"

	products, err := p.Products(context.Background())
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if products[0].ID != "p1" {
		t.Errorf("provider exposed mutation of source slice: %q", products[0].ID)
	}

	// Mutating the returned slice must not affect later reads.
	products[0].ID = "mutated"
	again, _ := p.Products(context.Background())
	if again[0].ID != "p1" {
		t.Errorf("provider exposed mutation of returned slice: %q", again[0].ID)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `[{"id":"p1","name":"Silla vintage","price":120,"category":"sillas"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	products, err := p.Products(context.Background())
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if len(products) != 1 || products[0].Category != CategoryChairs {
		t.Errorf("Products() = %+v, want one silla", products)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile() = nil error for missing file, want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("LoadFile() = nil error for malformed file, want error")
	}
}
