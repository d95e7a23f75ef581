// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package config loads and validates the application configuration from
// layered sources: built-in defaults, an optional YAML file, and environment
// variables, in ascending precedence.
package config

import (
	"time"

	"github.com/raremagic/shopintel/internal/behavior"
	"github.com/raremagic/shopintel/internal/checkout"
	"github.com/raremagic/shopintel/internal/correlation"
	"github.com/raremagic/shopintel/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	// Logging configures the global logger.
	Logging LoggingConfig `json:"logging" koanf:"logging"`

	// Storage configures session persistence.
	Storage StorageConfig `json:"storage" koanf:"storage"`

	// Catalog configures the product source.
	Catalog CatalogConfig `json:"catalog" koanf:"catalog"`

	// Behavior configures session tracking.
	Behavior BehaviorConfig `json:"behavior" koanf:"behavior"`

	// Recommend configures the recommendation engine.
	Recommend recommend.Config `json:"recommend" koanf:"recommend"`

	// Checkout configures the checkout rule tables.
	Checkout checkout.Config `json:"checkout" koanf:"checkout"`

	// Correlations seeds the category correlation store.
	Correlations []correlation.Entry `json:"correlations" koanf:"correlations"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `json:"level" koanf:"level" validate:"oneof=trace debug info warn error fatal panic"`

	// Format is "json" or "console".
	Format string `json:"format" koanf:"format" validate:"oneof=json console"`

	// Caller adds file:line to every entry.
	Caller bool `json:"caller" koanf:"caller"`
}

// StorageConfig configures where session behavior records persist.
type StorageConfig struct {
	// Backend selects the store: "badger" or "memory".
	Backend string `json:"backend" koanf:"backend" validate:"oneof=badger memory"`

	// Path is the Badger database directory; unused by the memory backend.
	Path string `json:"path" koanf:"path"`
}

// CatalogConfig configures the product catalog source.
type CatalogConfig struct {
	// Path is a JSON file holding the product list. Empty means no
	// catalog is loaded at startup.
	Path string `json:"path" koanf:"path"`
}

// BehaviorConfig configures session tracking.
type BehaviorConfig struct {
	// Retention is how long an idle session's history is kept before
	// cleanup resets it.
	Retention time.Duration `json:"retention" koanf:"retention" validate:"gt=0"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Storage: StorageConfig{
			Backend: "badger",
			Path:    "/data/shopintel/sessions",
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Behavior: BehaviorConfig{
			Retention: behavior.DefaultRetention,
		},
		Recommend:    recommend.DefaultConfig(),
		Checkout:     checkout.DefaultConfig(),
		Correlations: correlation.DefaultEntries(),
	}
}
