// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package main is the entry point for the shopintel command-line tool.
//
// ShopIntel tracks shopper sessions, scores product recommendations, and
// evaluates checkout rules for a furniture storefront. The tool exposes the
// library through four subcommands:
//
//	shopintel record    -event view -product chair-1 -category sillas
//	shopintel stats     -session <id>
//	shopintel recommend -session <id> -cart chair-1 -limit 3
//	shopintel checkout  -cart chair-1:2,table-1
//
// Session history persists in a local Badger database so repeated
// invocations against the same session id accumulate behavior.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (LOG_LEVEL, BADGER_PATH, CATALOG_PATH, ...)
//   - Config file (shopintel.yaml, or SHOPINTEL_CONFIG)
//   - Built-in defaults
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/raremagic/shopintel/internal/behavior"
	"github.com/raremagic/shopintel/internal/catalog"
	"github.com/raremagic/shopintel/internal/checkout"
	"github.com/raremagic/shopintel/internal/config"
	"github.com/raremagic/shopintel/internal/correlation"
	"github.com/raremagic/shopintel/internal/logging"
	"github.com/raremagic/shopintel/internal/recommend"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing subcommand")
	}

	ctx := context.Background()

	switch args[0] {
	case "record":
		return runRecord(ctx, cfg, args[1:])
	case "stats":
		return runStats(ctx, cfg, args[1:])
	case "recommend":
		return runRecommend(ctx, cfg, args[1:])
	case "checkout":
		return runCheckout(cfg, args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: shopintel <subcommand> [flags]

Subcommands:
  record     Record a session event (view, cart-add, cart-remove, purchase)
  stats      Print session statistics
  recommend  Generate product recommendations for a session and cart
  checkout   Evaluate checkout rules for a cart`)
}

func runRecord(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	session := fs.String("session", "", "session id (generated when empty)")
	event := fs.String("event", "view", "event type: view, cart-add, cart-remove, purchase")
	productID := fs.String("product", "", "product id")
	category := fs.String("category", "", "product category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == "" {
		return fmt.Errorf("record: -product is required")
	}

	sessionID := *session
	if sessionID == "" {
		sessionID = behavior.NewSessionID()
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	tracker := behavior.NewTracker(ctx, sessionID, store, logging.Logger(),
		behavior.WithRetention(cfg.Behavior.Retention))
	tracker.CleanupOldData(ctx, time.Now())

	cat := catalog.Category(*category)
	switch *event {
	case "view":
		tracker.RecordView(ctx, *productID, cat)
	case "cart-add":
		tracker.RecordCartAddition(ctx, *productID, cat)
	case "cart-remove":
		tracker.RecordCartRemoval(ctx, *productID)
	case "purchase":
		tracker.RecordPurchase(ctx, []string{*productID})
	default:
		return fmt.Errorf("record: unknown event type %q", *event)
	}

	fmt.Println(sessionID)
	return nil
}

func runStats(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	session := fs.String("session", "", "session id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *session == "" {
		return fmt.Errorf("stats: -session is required")
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	tracker := behavior.NewTracker(ctx, *session, store, logging.Logger(),
		behavior.WithRetention(cfg.Behavior.Retention))
	tracker.CleanupOldData(ctx, time.Now())

	return printJSON(tracker.Stats())
}

func runRecommend(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	session := fs.String("session", "", "session id (optional)")
	cartSpec := fs.String("cart", "", "comma-separated product ids, each with an optional :quantity")
	limit := fs.Int("limit", cfg.Recommend.DefaultLimit, "maximum recommendations")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	cart, err := parseCart(*cartSpec, products)
	if err != nil {
		return err
	}

	correlations, err := correlation.NewStore(cfg.Correlations)
	if err != nil {
		return fmt.Errorf("building correlation store: %w", err)
	}
	engine, err := recommend.NewEngine(cfg.Recommend, correlations, logging.Logger())
	if err != nil {
		return err
	}

	var profile *behavior.Record
	if *session != "" {
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		tracker := behavior.NewTracker(ctx, *session, store, logging.Logger(),
			behavior.WithRetention(cfg.Behavior.Retention))
		snapshot := tracker.Snapshot()
		profile = &snapshot
	}

	recs := engine.GenerateRecommendations(ctx, profile, cart, products, *limit)
	return printJSON(recs)
}

func runCheckout(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	cartSpec := fs.String("cart", "", "comma-separated product ids, each with an optional :quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cartSpec == "" {
		return fmt.Errorf("checkout: -cart is required")
	}

	products, err := loadCatalog(context.Background(), cfg)
	if err != nil {
		return err
	}
	cart, err := parseCart(*cartSpec, products)
	if err != nil {
		return err
	}

	hasLarge := checkout.HasLargeItems(cart, cfg.Checkout.LargeItemCategories)
	out := struct {
		Subtotal      float64                   `json:"subtotal"`
		Discount      float64                   `json:"discount"`
		Delivery      string                    `json:"delivery"`
		Validation    checkout.ValidationResult `json:"validation"`
		Complementary []catalog.Category        `json:"complementary_categories"`
	}{
		Subtotal:      cart.Subtotal(),
		Discount:      checkout.CalculateVolumeDiscount(cart.Subtotal(), cfg.Checkout.VolumeDiscounts),
		Delivery:      checkout.EstimateDeliveryTime(cart.TotalItems(), hasLarge, cfg.Checkout.Delivery),
		Validation:    checkout.ValidateCart(cart, cfg.Checkout),
		Complementary: checkout.ComplementaryCategories(cart, cfg.Checkout.Complementary),
	}
	return printJSON(out)
}

// openStore builds the configured behavior store and returns it with a
// close function.
func openStore(cfg *config.Config) (behavior.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return behavior.NewMemoryStore(), func() {}, nil
	case "badger":
		store, err := behavior.OpenBadgerStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening badger store at %s: %w", cfg.Storage.Path, err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logging.Warn().Err(err).Msg("Closing badger store")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config) ([]catalog.Product, error) {
	if cfg.Catalog.Path == "" {
		return nil, fmt.Errorf("catalog.path is not configured (set CATALOG_PATH)")
	}
	provider, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return provider.Products(ctx)
}

// parseCart resolves a "-cart" spec like "chair-1:2,table-1" against the
// catalog. A missing quantity means 1.
func parseCart(spec string, products []catalog.Product) (catalog.Cart, error) {
	if spec == "" {
		return nil, nil
	}

	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var cart catalog.Cart
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id := part
		qty := 1
		if idx := strings.LastIndex(part, ":"); idx >= 0 {
			id = part[:idx]
			n, err := strconv.Atoi(part[idx+1:])
			if err != nil {
				return nil, fmt.Errorf("invalid cart quantity in %q: %w", part, err)
			}
			qty = n
		}

		product, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown product id %q", id)
		}
		cart = append(cart, catalog.CartLine{Product: product, Quantity: qty})
	}
	return cart, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
