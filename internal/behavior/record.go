// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package behavior records one storefront session's interaction history and
// persists it as a single serialized blob through an injected Store.
//
// All id collections are deduplicated and category weights only increase,
// except for the wholesale reset performed by the retention cleanup. A
// single logical writer per session is assumed; persistence is
// last-write-wins with no locking.
package behavior

import (
	"sort"
	"time"

	"github.com/raremagic/shopintel/internal/catalog"
)

// Record is the persisted interaction history of one session.
type Record struct {
	// ViewedProducts holds the ids of viewed products, deduplicated.
	ViewedProducts []string `json:"viewed_products"`

	// PurchasedProducts holds the ids of purchased products, deduplicated.
	PurchasedProducts []string `json:"purchased_products"`

	// CartAdditions holds the ids of products added to the cart, deduplicated.
	CartAdditions []string `json:"cart_additions"`

	// RemovedFromCart holds the ids of products removed from the cart,
	// deduplicated. Recorded but not consumed by any scoring pass yet.
	RemovedFromCart []string `json:"removed_from_cart"`

	// CategoryWeights accumulates interest per category (views +1, cart
	// additions +2). Weights never decrease outside a full reset.
	CategoryWeights map[catalog.Category]int `json:"time_spent_on_categories"`

	// CategoryOrder lists categories in first-touch order. Kept so that
	// favorite-category ties break deterministically.
	CategoryOrder []catalog.Category `json:"category_order"`

	// LastActivity is the timestamp of the most recent recorded event.
	LastActivity time.Time `json:"last_activity"`
}

// newRecord returns an empty record stamped with the given time.
func newRecord(now time.Time) Record {
	return Record{
		ViewedProducts:    []string{},
		PurchasedProducts: []string{},
		CartAdditions:     []string{},
		RemovedFromCart:   []string{},
		CategoryWeights:   make(map[catalog.Category]int),
		CategoryOrder:     []catalog.Category{},
		LastActivity:      now,
	}
}

// normalize repairs nil collections after unmarshaling a partial blob.
func (r *Record) normalize() {
	if r.ViewedProducts == nil {
		r.ViewedProducts = []string{}
	}
	if r.PurchasedProducts == nil {
		r.PurchasedProducts = []string{}
	}
	if r.CartAdditions == nil {
		r.CartAdditions = []string{}
	}
	if r.RemovedFromCart == nil {
		r.RemovedFromCart = []string{}
	}
	if r.CategoryWeights == nil {
		r.CategoryWeights = make(map[catalog.Category]int)
	}
	if r.CategoryOrder == nil {
		r.CategoryOrder = []catalog.Category{}
	}

	// Legacy blobs carry weights without an order list. The original
	// touch order is lost, so rebuild deterministically by name.
	if len(r.CategoryOrder) < len(r.CategoryWeights) {
		present := make(map[catalog.Category]struct{}, len(r.CategoryOrder))
		for _, cat := range r.CategoryOrder {
			present[cat] = struct{}{}
		}
		var missing []catalog.Category
		for cat := range r.CategoryWeights {
			if _, ok := present[cat]; !ok {
				missing = append(missing, cat)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		r.CategoryOrder = append(r.CategoryOrder, missing...)
	}
}

// touchCategory adds weight to a category, tracking first-touch order.
func (r *Record) touchCategory(category catalog.Category, weight int) {
	if _, ok := r.CategoryWeights[category]; !ok {
		r.CategoryOrder = append(r.CategoryOrder, category)
	}
	r.CategoryWeights[category] += weight
}

// ViewCount returns how many view events are recorded for a product id.
// Ids are deduplicated, so the count is zero or one.
func (r *Record) ViewCount(productID string) int {
	if containsString(r.ViewedProducts, productID) {
		return 1
	}
	return 0
}

// CartAddCount returns how many cart-addition events are recorded for a
// product id. Ids are deduplicated, so the count is zero or one.
func (r *Record) CartAddCount(productID string) int {
	if containsString(r.CartAdditions, productID) {
		return 1
	}
	return 0
}

// Weight returns the accumulated interest weight for a category.
func (r *Record) Weight(category catalog.Category) int {
	return r.CategoryWeights[category]
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	cp := Record{
		ViewedProducts:    append([]string{}, r.ViewedProducts...),
		PurchasedProducts: append([]string{}, r.PurchasedProducts...),
		CartAdditions:     append([]string{}, r.CartAdditions...),
		RemovedFromCart:   append([]string{}, r.RemovedFromCart...),
		CategoryWeights:   make(map[catalog.Category]int, len(r.CategoryWeights)),
		CategoryOrder:     append([]catalog.Category{}, r.CategoryOrder...),
		LastActivity:      r.LastActivity,
	}
	for cat, w := range r.CategoryWeights {
		cp.CategoryWeights[cat] = w
	}
	return cp
}

// containsString reports whether s is present in list.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// appendUnique appends s to list if absent, returning the list.
func appendUnique(list []string, s string) []string {
	if containsString(list, s) {
		return list
	}
	return append(list, s)
}
