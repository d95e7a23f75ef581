// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package correlation provides the read-only category affinity table used by
// the recommendation engine's content-based pass.
//
// The table is seeded once at construction from configuration and never
// mutated afterwards. Affinities are directional: an entry records how
// strongly products in a target category pair with a source category.
package correlation

import (
	"fmt"

	"github.com/raremagic/shopintel/internal/catalog"
)

// Entry is a single category-to-category affinity.
type Entry struct {
	// Source is the category the affinity originates from.
	Source catalog.Category `json:"source" koanf:"source"`

	// Target is the category suggested for the source.
	Target catalog.Category `json:"target" koanf:"target"`

	// Strength is the affinity strength in [0, 1].
	Strength float64 `json:"strength" koanf:"strength"`

	// Confidence is the confidence in the affinity in [0, 1].
	Confidence float64 `json:"confidence" koanf:"confidence"`
}

// Store holds the immutable affinity table, category to ordered target list.
type Store struct {
	targets map[catalog.Category][]Entry
}

// NewStore builds a store from seed entries. The per-source target order of
// the seed slice is preserved. Entries with strength or confidence outside
// [0, 1] are rejected.
func NewStore(entries []Entry) (*Store, error) {
	targets := make(map[catalog.Category][]Entry)
	for i, e := range entries {
		if e.Strength < 0 || e.Strength > 1 {
			return nil, fmt.Errorf("correlation entry %d (%s->%s): strength must be in [0, 1], got %f",
				i, e.Source, e.Target, e.Strength)
		}
		if e.Confidence < 0 || e.Confidence > 1 {
			return nil, fmt.Errorf("correlation entry %d (%s->%s): confidence must be in [0, 1], got %f",
				i, e.Source, e.Target, e.Confidence)
		}
		targets[e.Source] = append(targets[e.Source], e)
	}
	return &Store{targets: targets}, nil
}

// Targets returns the ordered affinity entries for a source category.
// Unknown categories yield an empty slice. The result is a copy.
func (s *Store) Targets(source catalog.Category) []Entry {
	entries := s.targets[source]
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return cp
}

// TargetCategories returns just the ordered target categories for a source.
func (s *Store) TargetCategories(source catalog.Category) []catalog.Category {
	entries := s.targets[source]
	categories := make([]catalog.Category, 0, len(entries))
	for _, e := range entries {
		categories = append(categories, e.Target)
	}
	return categories
}

// Len returns the total number of seeded entries.
func (s *Store) Len() int {
	var n int
	for _, entries := range s.targets {
		n += len(entries)
	}
	return n
}

// DefaultEntries returns the storefront's seeded affinity table, derived
// from historical purchase pattern analysis.
func DefaultEntries() []Entry {
	return []Entry{
		{Source: catalog.CategoryChairs, Target: catalog.CategoryTables, Strength: 0.9, Confidence: 0.85},
		{Source: catalog.CategoryChairs, Target: catalog.CategoryLighting, Strength: 0.7, Confidence: 0.75},
		{Source: catalog.CategoryChairs, Target: catalog.CategoryDecor, Strength: 0.6, Confidence: 0.70},

		{Source: catalog.CategoryTables, Target: catalog.CategoryChairs, Strength: 0.9, Confidence: 0.85},
		{Source: catalog.CategoryTables, Target: catalog.CategoryDecor, Strength: 0.8, Confidence: 0.80},
		{Source: catalog.CategoryTables, Target: catalog.CategoryLighting, Strength: 0.7, Confidence: 0.75},

		{Source: catalog.CategoryFurniture, Target: catalog.CategoryLighting, Strength: 0.8, Confidence: 0.80},
		{Source: catalog.CategoryFurniture, Target: catalog.CategoryDecor, Strength: 0.7, Confidence: 0.75},
		{Source: catalog.CategoryFurniture, Target: "estanterias", Strength: 0.6, Confidence: 0.70},

		{Source: catalog.CategoryLighting, Target: catalog.CategoryFurniture, Strength: 0.8, Confidence: 0.80},
		{Source: catalog.CategoryLighting, Target: catalog.CategoryDecor, Strength: 0.7, Confidence: 0.75},
		{Source: catalog.CategoryLighting, Target: catalog.CategoryChairs, Strength: 0.6, Confidence: 0.70},
	}
}
