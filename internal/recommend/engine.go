// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/raremagic/shopintel/internal/behavior"
	"github.com/raremagic/shopintel/internal/catalog"
	"github.com/raremagic/shopintel/internal/correlation"
	"github.com/raremagic/shopintel/internal/metrics"
)

// ErrNilCorrelations is returned when an engine is constructed without a
// correlation store.
var ErrNilCorrelations = errors.New("recommend: correlation store is required")

// Engine merges the behavioral, content-based, and collaborative scoring
// passes into one ranked recommendation list. It is safe for concurrent use;
// all state is read-only after construction.
type Engine struct {
	cfg          Config
	correlations *correlation.Store
	logger       zerolog.Logger
}

// NewEngine validates the configuration and builds an engine over the given
// correlation store.
func NewEngine(cfg Config, correlations *correlation.Store, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}
	if correlations == nil {
		return nil, ErrNilCorrelations
	}
	return &Engine{
		cfg:          cfg,
		correlations: correlations,
		logger:       logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// GenerateRecommendations scores the catalog against the shopper's profile
// and cart and returns at most limit recommendations, ranked by score
// descending. Products already in the cart are never recommended. A nil
// profile skips the behavioral pass. The result is never nil and the method
// never fails; a cancelled context, a non-positive limit, an empty catalog,
// or an empty cart yields an empty list.
func (e *Engine) GenerateRecommendations(ctx context.Context, profile *behavior.Record, cart catalog.Cart, products []catalog.Product, limit int) []Recommendation {
	metrics.RecommendRequests.Inc()
	timer := prometheus.NewTimer(metrics.RecommendDuration)
	defer timer.ObserveDuration()

	if ctx.Err() != nil || limit <= 0 || len(products) == 0 || len(cart) == 0 {
		metrics.RecommendResultsReturned.Observe(0)
		return []Recommendation{}
	}

	inCart := make(map[string]struct{}, len(cart))
	for _, line := range cart {
		inCart[line.Product.ID] = struct{}{}
	}

	merged := make([]Recommendation, 0, limit)
	seen := make(map[string]struct{})
	merge := func(recs []Recommendation) {
		for _, rec := range recs {
			if _, ok := seen[rec.Product.ID]; ok {
				continue
			}
			seen[rec.Product.ID] = struct{}{}
			merged = append(merged, rec)
		}
	}

	// Pass order decides which source wins a duplicate product:
	// behavioral beats content-based beats collaborative.
	merge(e.behavioralPass(profile, products, inCart))
	merge(e.contentPass(cart, products, inCart))
	merge(e.collaborativePass(products, inCart))

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	metrics.RecommendResultsReturned.Observe(float64(len(merged)))
	e.logger.Debug().
		Int("candidates", len(seen)).
		Int("returned", len(merged)).
		Int("limit", limit).
		Msg("Generated recommendations")

	return merged
}

// behavioralPass scores every candidate product from the shopper's recorded
// views, cart additions, and category interest.
func (e *Engine) behavioralPass(profile *behavior.Record, products []catalog.Product, inCart map[string]struct{}) []Recommendation {
	if profile == nil {
		return nil
	}

	var recs []Recommendation
	for _, p := range products {
		if _, ok := inCart[p.ID]; ok {
			continue
		}

		views := profile.ViewCount(p.ID)
		adds := profile.CartAddCount(p.ID)
		interest := profile.Weight(p.Category)

		score := views*e.cfg.ViewWeight + adds*e.cfg.CartAddWeight + interest*e.cfg.CategoryWeight
		if score <= 0 {
			continue
		}
		if score > e.cfg.ScoreCap {
			score = e.cfg.ScoreCap
		}

		confidence := float64(score) / float64(e.cfg.ScoreCap)
		if confidence > e.cfg.MaxBehavioralConfidence {
			confidence = e.cfg.MaxBehavioralConfidence
		}

		recs = append(recs, Recommendation{
			Product:    p,
			Reason:     behavioralReason(views, adds, interest, p.Category),
			Score:      score,
			Source:     SourceBehavioral,
			Confidence: confidence,
		})
	}
	return recs
}

// contentPass recommends products from categories correlated with the
// categories already in the cart, in the store's strength order.
func (e *Engine) contentPass(cart catalog.Cart, products []catalog.Product, inCart map[string]struct{}) []Recommendation {
	var recs []Recommendation
	for _, cat := range cart.DistinctCategories() {
		for _, entry := range e.correlations.Targets(cat) {
			for _, p := range products {
				if p.Category != entry.Target {
					continue
				}
				if _, ok := inCart[p.ID]; ok {
					continue
				}
				recs = append(recs, Recommendation{
					Product:    p,
					Reason:     fmt.Sprintf("Complementa tu %s", cat),
					Score:      e.cfg.ContentScore,
					Source:     SourceContentBased,
					Confidence: e.cfg.ContentConfidence,
				})
			}
		}
	}
	return recs
}

// collaborativePass recommends products from the target category of every
// affinity rule, regardless of what the cart holds.
func (e *Engine) collaborativePass(products []catalog.Product, inCart map[string]struct{}) []Recommendation {
	var recs []Recommendation
	for _, rule := range e.cfg.Affinities {
		score := int(rule.Strength * float64(e.cfg.CollaborativeScale))
		for _, p := range products {
			if p.Category != rule.Target {
				continue
			}
			if _, ok := inCart[p.ID]; ok {
				continue
			}
			recs = append(recs, Recommendation{
				Product:    p,
				Reason:     fmt.Sprintf("Frecuentemente comprado con %s", rule.Source),
				Score:      score,
				Source:     SourceCollaborative,
				Confidence: rule.Strength,
			})
		}
	}
	return recs
}

func behavioralReason(views, adds, interest int, cat catalog.Category) string {
	var parts []string
	if views > 0 {
		parts = append(parts, fmt.Sprintf("Visto %d veces", views))
	}
	if adds > 0 {
		parts = append(parts, fmt.Sprintf("Agregado al carrito %d veces", adds))
	}
	if interest > 0 {
		parts = append(parts, fmt.Sprintf("Interés en categoría %s", cat))
	}
	return strings.Join(parts, ". ") + "."
}
