// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

// Package metrics provides Prometheus metrics for observability.
//
// Collectors are registered with the default registry via promauto at
// package load. Hosts embedding this library expose them however they
// serve metrics; the library itself has no HTTP surface.
//
// Available metrics:
//   - behavior_persistence_errors_total: failed blob reads/writes (counter)
//     Labels: op (load, save)
//   - behavior_malformed_records_total: stored blobs discarded as malformed (counter)
//   - behavior_sessions_reset_total: stale sessions wiped by retention cleanup (counter)
//   - recommend_requests_total: recommendation requests (counter)
//   - recommend_duration_seconds: recommendation latency (histogram)
//   - recommend_results_returned: recommendations per response (histogram)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Behavior persistence metrics
	BehaviorPersistenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_persistence_errors_total",
			Help: "Total number of failed behavior blob operations (fail-open)",
		},
		[]string{"op"}, // "load", "save"
	)

	BehaviorMalformedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "behavior_malformed_records_total",
			Help: "Total number of stored behavior blobs discarded as malformed",
		},
	)

	BehaviorSessionsReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "behavior_sessions_reset_total",
			Help: "Total number of sessions wiped by the retention cleanup",
		},
	)

	// Recommendation engine metrics
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation generation in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	RecommendResultsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_results_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)
)
