// Package domain holds the deal snapshot consumed by the signals engine.
// The full deal lifecycle (ingestion, copywriting, publishing) lives outside
// this service; only the fields aggregation needs are modelled here.
package domain

import "time"

// DealSnapshot is a point-in-time view of one deal.
type DealSnapshot struct {
	ID               string
	Category         string
	CategoryOverride string
	OldPriceCents    int64
	CurrentPriceCents int64
	// ExpiresAt is zero when the deal has no known expiry.
	ExpiresAt time.Time
}

// EffectiveCategory resolves the category used for grouping: the override if
// set, else the base category, else "unknown".
func (d *DealSnapshot) EffectiveCategory() string {
	if d.CategoryOverride != "" {
		return d.CategoryOverride
	}
	if d.Category != "" {
		return d.Category
	}
	return "unknown"
}

// DiscountFraction returns (old-current)/old and true when the old price is a
// valid positive amount; otherwise 0 and false.
func (d *DealSnapshot) DiscountFraction() (float64, bool) {
	if d.OldPriceCents <= 0 {
		return 0, false
	}
	return float64(d.OldPriceCents-d.CurrentPriceCents) / float64(d.OldPriceCents), true
}
