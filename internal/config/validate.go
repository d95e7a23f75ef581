// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/raremagic/shopintel/internal/correlation"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for consistency. Field-level constraints
// are enforced through struct tags; cross-field and table semantics are
// checked explicitly.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config fields: %w", err)
	}

	if c.Storage.Backend == "badger" && c.Storage.Path == "" {
		return errors.New("storage.path is required for the badger backend")
	}

	if err := c.Recommend.Validate(); err != nil {
		return err
	}

	if err := c.validateCheckout(); err != nil {
		return err
	}

	// Building the store exercises the same range checks used at runtime.
	if _, err := correlation.NewStore(c.Correlations); err != nil {
		return fmt.Errorf("invalid correlations: %w", err)
	}

	return nil
}

func (c *Config) validateCheckout() error {
	for i, tier := range c.Checkout.VolumeDiscounts {
		if tier.Threshold < 0 {
			return fmt.Errorf("checkout.volume_discounts[%d]: threshold %v is negative", i, tier.Threshold)
		}
		if tier.Discount < 0 || tier.Discount >= 1 {
			return fmt.Errorf("checkout.volume_discounts[%d]: discount %v out of range [0, 1)", i, tier.Discount)
		}
	}
	if c.Checkout.MaxQuantityPerItem < 0 {
		return errors.New("checkout.max_quantity_per_item must not be negative")
	}
	if c.Checkout.MinCartValueForDiscounts < 0 {
		return errors.New("checkout.min_cart_value_for_discounts must not be negative")
	}
	return nil
}
