package signals

import (
	"math"
	"sort"
	"time"

	"github.com/trendsinusa/dealsignals/internal/attribution"
	dealdomain "github.com/trendsinusa/dealsignals/internal/deal/domain"
	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
)

// clickEventName is the decoded event name marking an outbound click.
const clickEventName = "affiliate_click"

// RollupInput is everything BuildReport needs; all of it is plain data so
// the rollup stays pure and trivially testable.
type RollupInput struct {
	// Events and Records are parallel: Records[i] is the decoded attribution
	// of Events[i].
	Events  []eventdomain.Event
	Records []attribution.Record
	// Deals maps deal id to snapshot for every resolvable deal in the window.
	Deals map[string]*dealdomain.DealSnapshot
	// Now anchors the momentum split and the report timestamps.
	Now         time.Time
	WindowStart time.Time
	// Truncated is carried through from the bounded fetch.
	Truncated bool
}

type dimAcc struct {
	impressions int
	clicks      int
	revenue     int64
}

// BuildReport computes the unfiltered rollup. Impressions are events whose
// href is the impression sentinel; clicks are events decoded to
// affiliate_click; every other synthetic event is ignored for CTR and
// revenue. Callers apply the privacy filter before the report leaves the
// engine.
func BuildReport(in RollupInput) *Report {
	sections := map[string]*dimAcc{}
	dealStates := map[string]*dimAcc{}
	categories := map[string]*dimAcc{}
	providers := map[string]*dimAcc{}
	partners := map[string]*dimAcc{}

	expiry := map[string]int{}
	last7 := map[string]int{}
	prior7 := map[string]int{}
	var last7Total, prior7Total int

	// one discount sample per distinct clicked deal, grouped by category
	volSamples := map[string][]float64{}
	volSeen := map[string]bool{}

	totals := dimAcc{}
	weekAgo := in.Now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := in.Now.Add(-14 * 24 * time.Hour)

	for i := range in.Events {
		ev := &in.Events[i]
		rec := &in.Records[i]

		isImpression := ev.IsImpression()
		isClick := rec.EventName == clickEventName
		if !isImpression && !isClick {
			continue
		}

		category := "unknown"
		var deal *dealdomain.DealSnapshot
		if ev.DealID != "" {
			if d, ok := in.Deals[ev.DealID]; ok {
				deal = d
				category = d.EffectiveCategory()
			}
		}

		revenue := int64(0)
		if isClick {
			revenue = EPCCents(rec.Provider)
		}

		bump(sections, rec.Section, isImpression, isClick, revenue)
		bump(dealStates, rec.DealStatus, isImpression, isClick, revenue)
		bump(categories, category, isImpression, isClick, revenue)
		bump(providers, rec.Provider, isImpression, isClick, revenue)
		bump(partners, rec.PartnerKey, isImpression, isClick, revenue)

		if isImpression {
			totals.impressions++
		}
		if isClick {
			totals.clicks++
			totals.revenue += revenue

			if deal != nil && !deal.ExpiresAt.IsZero() {
				expiry[expiryBucket(deal.ExpiresAt.Sub(ev.OccurredAt))]++
			}
			if ev.OccurredAt.After(weekAgo) {
				last7[category]++
				last7Total++
			} else if ev.OccurredAt.After(twoWeeksAgo) {
				prior7[category]++
				prior7Total++
			}
			if deal != nil && !volSeen[deal.ID] {
				volSeen[deal.ID] = true
				if frac, ok := deal.DiscountFraction(); ok {
					volSamples[category] = append(volSamples[category], frac)
				}
			}
		}
	}

	return &Report{
		GeneratedAt: in.Now,
		WindowStart: in.WindowStart,
		WindowEnd:   in.Now,
		Truncated:   in.Truncated,
		Totals: Totals{
			Impressions:     totals.impressions,
			Clicks:          totals.clicks,
			CTR:             ctr(totals.clicks, totals.impressions),
			EstRevenueCents: totals.revenue,
		},
		Sections:           dimensionRows(sections),
		DealStates:         dimensionRows(dealStates),
		Categories:         dimensionRows(categories),
		Providers:          dimensionRows(providers),
		Partners:           dimensionRows(partners),
		ExpiryBuckets:      expiryRows(expiry),
		Momentum:           momentumRows(last7, prior7, last7Total, prior7Total),
		DiscountVolatility: volatilityRows(volSamples),
		Assumptions:        assumptions(in.Truncated),
	}
}

// ctr guards the zero-impressions case: CTR is 0, never NaN.
func ctr(clicks, impressions int) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions)
}

func bump(m map[string]*dimAcc, key string, impression, click bool, revenue int64) {
	a, ok := m[key]
	if !ok {
		a = &dimAcc{}
		m[key] = a
	}
	if impression {
		a.impressions++
	}
	if click {
		a.clicks++
		a.revenue += revenue
	}
}

func expiryBucket(remaining time.Duration) string {
	switch {
	case remaining <= time.Hour:
		return BucketLTE1h
	case remaining <= 6*time.Hour:
		return BucketLTE6h
	case remaining <= 24*time.Hour:
		return BucketLTE24h
	default:
		return BucketGT24h
	}
}

func dimensionRows(m map[string]*dimAcc) []DimensionRow {
	rows := make([]DimensionRow, 0, len(m))
	for key, a := range m {
		rows = append(rows, DimensionRow{
			Key:             key,
			Impressions:     a.impressions,
			Clicks:          a.clicks,
			CTR:             ctr(a.clicks, a.impressions),
			EstRevenueCents: a.revenue,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func expiryRows(m map[string]int) []ExpiryBucketRow {
	rows := make([]ExpiryBucketRow, 0, 4)
	for _, b := range []string{BucketLTE1h, BucketLTE6h, BucketLTE24h, BucketGT24h} {
		if n, ok := m[b]; ok {
			rows = append(rows, ExpiryBucketRow{Bucket: b, Clicks: n})
		}
	}
	return rows
}

func momentumRows(last7, prior7 map[string]int, last7Total, prior7Total int) []MomentumRow {
	seen := map[string]bool{}
	rows := make([]MomentumRow, 0, len(last7)+len(prior7))
	for _, m := range []map[string]int{last7, prior7} {
		for cat := range m {
			if seen[cat] {
				continue
			}
			seen[cat] = true
			sl := share(last7[cat], last7Total)
			sp := share(prior7[cat], prior7Total)
			rows = append(rows, MomentumRow{
				Category:    cat,
				ShareLast7:  sl,
				SharePrior7: sp,
				Delta:       sl - sp,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Delta != rows[j].Delta {
			return rows[i].Delta > rows[j].Delta
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func volatilityRows(samples map[string][]float64) []VolatilityRow {
	rows := make([]VolatilityRow, 0, len(samples))
	for cat, vals := range samples {
		rows = append(rows, VolatilityRow{
			Category: cat,
			Samples:  len(vals),
			Mean:     mean(vals),
			StdDev:   sampleStdDev(vals),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Samples != rows[j].Samples {
			return rows[i].Samples > rows[j].Samples
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStdDev is Bessel-corrected; fewer than 2 samples yield 0.
func sampleStdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

func assumptions(truncated bool) []string {
	out := []string{
		"revenue is a static per-provider EPC estimate, not reconciled settlement data",
		"counts cover decoded impression and affiliate_click events only",
	}
	if truncated {
		out = append(out, "event window hit the fetch cap; counts are a lower bound")
	}
	return out
}
