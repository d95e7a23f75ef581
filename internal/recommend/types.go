// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package recommend produces scored product recommendations by merging three
// passes over the catalog: behavioral (session history), content-based
// (category correlations), and collaborative (seeded purchase affinities).
package recommend

import (
	"github.com/raremagic/shopintel/internal/catalog"
)

// Source identifies which pass produced a recommendation.
type Source string

const (
	// SourceBehavioral marks recommendations scored from the shopper's
	// own session history.
	SourceBehavioral Source = "behavioral"

	// SourceContentBased marks recommendations derived from category
	// correlations against the cart contents.
	SourceContentBased Source = "content-based"

	// SourceCollaborative marks recommendations derived from seeded
	// purchase-affinity rules.
	SourceCollaborative Source = "collaborative"
)

// String returns the source name.
func (s Source) String() string {
	return string(s)
}

// Recommendation is one scored product suggestion.
type Recommendation struct {
	// Product is the recommended catalog product.
	Product catalog.Product `json:"product"`

	// Reason explains the recommendation in user-facing terms.
	Reason string `json:"reason"`

	// Score ranks the recommendation; higher is stronger.
	Score int `json:"score"`

	// Source names the pass that produced it.
	Source Source `json:"source"`

	// Confidence is the pass's certainty in [0, 1].
	Confidence float64 `json:"confidence"`
}
