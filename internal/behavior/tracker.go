// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package behavior

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raremagic/shopintel/internal/catalog"
	"github.com/raremagic/shopintel/internal/metrics"
)

// DefaultRetention is the window after which an idle session's history is
// wiped by CleanupOldData.
const DefaultRetention = 30 * 24 * time.Hour

// FavoriteNone is reported as the favorite category when no category has
// been touched yet.
const FavoriteNone catalog.Category = "N/A"

// Stats summarizes a session's browsing and purchasing intensity.
type Stats struct {
	// TotalViewed is the number of distinct products viewed.
	TotalViewed int `json:"total_viewed"`

	// TotalPurchased is the number of distinct products purchased.
	TotalPurchased int `json:"total_purchased"`

	// FavoriteCategory is the category with the highest weight. Ties break
	// by first-touch order; FavoriteNone when no category was touched.
	FavoriteCategory catalog.Category `json:"favorite_category"`

	// EngagementScore is a bounded derived metric in [0, 100]:
	// min(100, viewed*10 + purchased*20 + sum(weights)*2).
	EngagementScore int `json:"engagement_score"`
}

// Tracker records one session's interactions and persists them through the
// injected Store. Every failure path is fail-open: the in-memory record
// stays valid and the error is logged and counted, never surfaced.
//
// A Tracker assumes a single logical writer per session and holds no lock.
type Tracker struct {
	sessionID string
	store     Store
	logger    zerolog.Logger
	now       func() time.Time
	retention time.Duration
	record    Record
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the tracker's time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithRetention overrides the retention window used by CleanupOldData.
func WithRetention(d time.Duration) Option {
	return func(t *Tracker) { t.retention = d }
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewTracker creates a tracker for a session and loads its stored record.
// A missing blob yields an empty record; an unreadable or malformed blob is
// discarded with a log entry and the tracker continues with defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTracker(ctx context.Context, sessionID string, store Store, logger zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		sessionID: sessionID,
		store:     store,
		logger:    logger.With().Str("component", "behavior").Str("session_id", sessionID).Logger(),
		now:       time.Now,
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.record = t.load(ctx)
	return t
}

// SessionID returns the session this tracker is bound to.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// RecordView records a product view: the id joins the viewed set if absent
// and the category weight increases by 1.
func (t *Tracker) RecordView(ctx context.Context, productID string, category catalog.Category) {
	t.record.ViewedProducts = appendUnique(t.record.ViewedProducts, productID)
	t.record.touchCategory(category, 1)
	t.record.LastActivity = t.now()
	t.persist(ctx)
}

// RecordCartAddition records a cart addition: the id joins the addition set
// if absent and the category weight increases by 2, a stronger signal than
// a view.
func (t *Tracker) RecordCartAddition(ctx context.Context, productID string, category catalog.Category) {
	t.record.CartAdditions = appendUnique(t.record.CartAdditions, productID)
	t.record.touchCategory(category, 2)
	t.record.LastActivity = t.now()
	t.persist(ctx)
}

// RecordCartRemoval records a cart removal. The signal is stored but not
// consumed by any scoring pass.
func (t *Tracker) RecordCartRemoval(ctx context.Context, productID string) {
	t.record.RemovedFromCart = appendUnique(t.record.RemovedFromCart, productID)
	t.record.LastActivity = t.now()
	t.persist(ctx)
}

// RecordPurchase records a completed purchase. Each id joins the purchased
// set at most once.
func (t *Tracker) RecordPurchase(ctx context.Context, productIDs []string) {
	for _, id := range productIDs {
		t.record.PurchasedProducts = appendUnique(t.record.PurchasedProducts, id)
	}
	t.record.LastActivity = t.now()
	t.persist(ctx)
}

// CleanupOldData wipes the whole record when the session has been idle
// longer than the retention window, and is a no-op otherwise. Callers
// invoke it explicitly, typically right after loading a session; there is
// no background timer.
func (t *Tracker) CleanupOldData(ctx context.Context, now time.Time) {
	if now.Sub(t.record.LastActivity) <= t.retention {
		return
	}

	t.logger.Info().
		Time("last_activity", t.record.LastActivity).
		Dur("retention", t.retention).
		Msg("resetting stale session history")
	metrics.BehaviorSessionsReset.Inc()

	t.record = newRecord(now)
	t.persist(ctx)
}

// Stats returns the session's summary statistics.
func (t *Tracker) Stats() Stats {
	favorite := FavoriteNone
	best := 0
	for _, cat := range t.record.CategoryOrder {
		if w := t.record.CategoryWeights[cat]; w > best {
			best = w
			favorite = cat
		}
	}

	var weightSum int
	for _, w := range t.record.CategoryWeights {
		weightSum += w
	}

	score := len(t.record.ViewedProducts)*10 + len(t.record.PurchasedProducts)*20 + weightSum*2
	if score > 100 {
		score = 100
	}

	return Stats{
		TotalViewed:      len(t.record.ViewedProducts),
		TotalPurchased:   len(t.record.PurchasedProducts),
		FavoriteCategory: favorite,
		EngagementScore:  score,
	}
}

// Snapshot returns a deep copy of the current record for read-only
// consumers such as the recommendation engine.
func (t *Tracker) Snapshot() Record {
	return t.record.Clone()
}

// load reads and decodes the stored record, falling back to an empty record
// on any failure.
func (t *Tracker) load(ctx context.Context) Record {
	data, err := t.store.Get(ctx, t.sessionID)
	if errors.Is(err, ErrNotFound) {
		return newRecord(t.now())
	}
	if err != nil {
		metrics.BehaviorPersistenceErrors.WithLabelValues("load").Inc()
		t.logger.Warn().Err(err).Msg("behavior load failed, starting empty")
		return newRecord(t.now())
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		metrics.BehaviorMalformedRecords.Inc()
		t.logger.Warn().Err(err).Msg("discarding malformed behavior record")
		return newRecord(t.now())
	}

	record.normalize()
	return record
}

// persist writes the current record. Failures are logged and counted; the
// in-memory record remains authoritative for this session.
func (t *Tracker) persist(ctx context.Context) {
	data, err := json.Marshal(&t.record)
	if err != nil {
		metrics.BehaviorPersistenceErrors.WithLabelValues("save").Inc()
		t.logger.Warn().Err(err).Msg("behavior encode failed")
		return
	}

	if err := t.store.Set(ctx, t.sessionID, data); err != nil {
		metrics.BehaviorPersistenceErrors.WithLabelValues("save").Inc()
		t.logger.Warn().Err(err).Msg("behavior save failed")
	}
}
