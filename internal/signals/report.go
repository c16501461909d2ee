// Package signals turns raw click/impression events into privacy-filtered
// dimensional rollups. Aggregation is recomputed from scratch on every call;
// the bounded event fetch is the only performance lever, and there is no
// incremental or shared aggregation state.
package signals

import "time"

// DimensionRow is one bucket of a per-dimension breakdown.
type DimensionRow struct {
	Key             string  `json:"key"`
	Impressions     int     `json:"impressions"`
	Clicks          int     `json:"clicks"`
	CTR             float64 `json:"ctr"`
	EstRevenueCents int64   `json:"estRevenueCents"`
}

// Totals aggregates the whole window.
type Totals struct {
	Impressions     int     `json:"impressions"`
	Clicks          int     `json:"clicks"`
	CTR             float64 `json:"ctr"`
	EstRevenueCents int64   `json:"estRevenueCents"`
}

// MomentumRow is a category's week-over-week click-share delta.
type MomentumRow struct {
	Category    string  `json:"category"`
	ShareLast7  float64 `json:"shareLast7"`
	SharePrior7 float64 `json:"sharePrior7"`
	Delta       float64 `json:"delta"`
}

// Time-to-expiry buckets for clicks joined to a deal with a known expiry.
const (
	BucketLTE1h  = "lte_1h"
	BucketLTE6h  = "lte_6h"
	BucketLTE24h = "lte_24h"
	BucketGT24h  = "gt_24h"
)

// ExpiryBucketRow counts clicks by time remaining until the deal expires.
type ExpiryBucketRow struct {
	Bucket string `json:"bucket"`
	Clicks int    `json:"clicks"`
}

// VolatilityRow is a category's discount-depth distribution over clicked
// deals, a proxy for pricing volatility. Pro tier only.
type VolatilityRow struct {
	Category string  `json:"category"`
	Samples  int     `json:"samples"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
}

// Report is the full signals response. It is produced fresh per call and
// never cached by the engine.
type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	// Truncated is set when the window hit the fetch cap; counts are then a
	// lower bound, not exact.
	Truncated bool `json:"truncated"`

	Totals     Totals         `json:"totals"`
	Sections   []DimensionRow `json:"sections"`
	DealStates []DimensionRow `json:"dealStates"`
	Categories []DimensionRow `json:"categories"`
	Providers  []DimensionRow `json:"providers"`
	Partners   []DimensionRow `json:"partners"`

	ExpiryBuckets []ExpiryBucketRow `json:"expiryBuckets"`
	Momentum      []MomentumRow     `json:"momentum"`
	// DiscountVolatility is present only for the pro tier.
	DiscountVolatility []VolatilityRow `json:"discountVolatility,omitempty"`

	Assumptions []string `json:"assumptions"`
}
