// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package recommend

import (
	"fmt"

	"github.com/raremagic/shopintel/internal/catalog"
)

// AffinityRule seeds one collaborative signal: shoppers who buy from Source
// also buy from Target with the given strength.
type AffinityRule struct {
	// Source is the cart category that triggers the rule.
	Source catalog.Category `json:"source" koanf:"source"`

	// Target is the category to recommend from.
	Target catalog.Category `json:"target" koanf:"target"`

	// Strength is the affinity in (0, 1]; it doubles as the
	// recommendation confidence.
	Strength float64 `json:"strength" koanf:"strength"`
}

// Config tunes the scoring passes. DefaultConfig returns the storefront's
// seeded values; zero or negative fields fail Validate.
type Config struct {
	// ViewWeight is the behavioral score contribution per recorded view.
	ViewWeight int `json:"view_weight" koanf:"view_weight"`

	// CartAddWeight is the behavioral contribution per cart addition.
	CartAddWeight int `json:"cart_add_weight" koanf:"cart_add_weight"`

	// CategoryWeight multiplies the accumulated category interest weight.
	CategoryWeight int `json:"category_weight" koanf:"category_weight"`

	// ScoreCap is the upper bound on behavioral scores.
	ScoreCap int `json:"score_cap" koanf:"score_cap"`

	// MaxBehavioralConfidence caps the behavioral confidence.
	MaxBehavioralConfidence float64 `json:"max_behavioral_confidence" koanf:"max_behavioral_confidence"`

	// ContentScore is the fixed score of content-based recommendations.
	ContentScore int `json:"content_score" koanf:"content_score"`

	// ContentConfidence is the fixed confidence of content-based
	// recommendations.
	ContentConfidence float64 `json:"content_confidence" koanf:"content_confidence"`

	// CollaborativeScale converts an affinity strength into a score.
	CollaborativeScale int `json:"collaborative_scale" koanf:"collaborative_scale"`

	// DefaultLimit is the recommendation count used when a caller does
	// not specify one.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// Affinities lists the seeded collaborative rules.
	Affinities []AffinityRule `json:"affinities" koanf:"affinities"`
}

// DefaultConfig returns the storefront's seeded scoring parameters.
func DefaultConfig() Config {
	return Config{
		ViewWeight:              10,
		CartAddWeight:           20,
		CategoryWeight:          5,
		ScoreCap:                100,
		MaxBehavioralConfidence: 0.9,
		ContentScore:            70,
		ContentConfidence:       0.8,
		CollaborativeScale:      80,
		DefaultLimit:            3,
		Affinities: []AffinityRule{
			{Source: catalog.CategoryChairs, Target: catalog.CategoryTables, Strength: 0.9},
			{Source: catalog.CategoryTables, Target: catalog.CategoryDecor, Strength: 0.8},
			{Source: catalog.CategoryFurniture, Target: catalog.CategoryLighting, Strength: 0.8},
		},
	}
}

// Validate checks the configuration for internally consistent values.
func (c Config) Validate() error {
	if c.ViewWeight <= 0 || c.CartAddWeight <= 0 || c.CategoryWeight <= 0 {
		return fmt.Errorf("recommend: behavioral weights must be positive")
	}
	if c.ScoreCap <= 0 {
		return fmt.Errorf("recommend: score cap must be positive")
	}
	if c.MaxBehavioralConfidence <= 0 || c.MaxBehavioralConfidence > 1 {
		return fmt.Errorf("recommend: max behavioral confidence %v out of range (0, 1]", c.MaxBehavioralConfidence)
	}
	if c.ContentScore <= 0 {
		return fmt.Errorf("recommend: content score must be positive")
	}
	if c.ContentConfidence <= 0 || c.ContentConfidence > 1 {
		return fmt.Errorf("recommend: content confidence %v out of range (0, 1]", c.ContentConfidence)
	}
	if c.CollaborativeScale <= 0 {
		return fmt.Errorf("recommend: collaborative scale must be positive")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("recommend: default limit must be positive")
	}
	for i, rule := range c.Affinities {
		if rule.Source == "" || rule.Target == "" {
			return fmt.Errorf("recommend: affinity rule %d has empty categories", i)
		}
		if rule.Strength <= 0 || rule.Strength > 1 {
			return fmt.Errorf("recommend: affinity rule %d strength %v out of range (0, 1]", i, rule.Strength)
		}
	}
	return nil
}
