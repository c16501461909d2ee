package signals

import partnerdomain "github.com/trendsinusa/dealsignals/internal/partner/domain"

// Thresholds are the tier-dependent privacy parameters. The lower tier uses
// stricter minimums: small per-row samples aggregated less could otherwise
// re-identify a specific partner or site's thin traffic.
type Thresholds struct {
	MinClicks         int
	MinImpressions    int
	TopN              int
	IncludeVolatility bool
}

// ThresholdsFor returns the privacy parameters for tier. Unknown tiers get
// the basic (strictest) thresholds.
func ThresholdsFor(tier partnerdomain.Tier) Thresholds {
	if tier == partnerdomain.TierPro {
		return Thresholds{MinClicks: 3, MinImpressions: 50, TopN: 20, IncludeVolatility: true}
	}
	return Thresholds{MinClicks: 10, MinImpressions: 200, TopN: 5, IncludeVolatility: false}
}

// ApplyPrivacy returns a copy of r with small-sample rows suppressed and
// list sizes clamped for tier. Pure and deterministic: same input and tier,
// same output. Totals are left untouched; only breakdown rows can leak.
func ApplyPrivacy(r *Report, tier partnerdomain.Tier) *Report {
	th := ThresholdsFor(tier)
	out := *r
	out.Sections = filterRows(r.Sections, th)
	out.DealStates = filterRows(r.DealStates, th)
	out.Categories = filterRows(r.Categories, th)
	out.Providers = filterRows(r.Providers, th)
	out.Partners = filterRows(r.Partners, th)
	out.Momentum = clampMomentum(r.Momentum, th.TopN)
	if th.IncludeVolatility {
		out.DiscountVolatility = clampVolatility(r.DiscountVolatility, th.TopN)
	} else {
		// absent for lower tiers, not suppressed-but-present
		out.DiscountVolatility = nil
	}
	return &out
}

func filterRows(rows []DimensionRow, th Thresholds) []DimensionRow {
	out := make([]DimensionRow, 0, len(rows))
	for _, row := range rows {
		if row.Clicks < th.MinClicks || row.Impressions < th.MinImpressions {
			continue
		}
		out = append(out, row)
		if len(out) == th.TopN {
			break
		}
	}
	return out
}

func clampMomentum(rows []MomentumRow, topN int) []MomentumRow {
	if len(rows) <= topN {
		return append([]MomentumRow(nil), rows...)
	}
	return append([]MomentumRow(nil), rows[:topN]...)
}

func clampVolatility(rows []VolatilityRow, topN int) []VolatilityRow {
	if len(rows) <= topN {
		return append([]VolatilityRow(nil), rows...)
	}
	return append([]VolatilityRow(nil), rows[:topN]...)
}
