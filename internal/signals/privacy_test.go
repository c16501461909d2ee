package signals

import (
	"testing"

	partnerdomain "github.com/trendsinusa/dealsignals/internal/partner/domain"
)

func TestThresholdsFor(t *testing.T) {
	basic := ThresholdsFor(partnerdomain.TierBasic)
	if basic.MinClicks != 10 || basic.MinImpressions != 200 || basic.TopN != 5 || basic.IncludeVolatility {
		t.Errorf("basic thresholds = %+v, want {10 200 5 false}", basic)
	}
	pro := ThresholdsFor(partnerdomain.TierPro)
	if pro.MinClicks != 3 || pro.MinImpressions != 50 || pro.TopN != 20 || !pro.IncludeVolatility {
		t.Errorf("pro thresholds = %+v, want {3 50 20 true}", pro)
	}
	unknown := ThresholdsFor(partnerdomain.Tier("enterprise"))
	if unknown != basic {
		t.Errorf("unknown tier thresholds = %+v, want basic %+v", unknown, basic)
	}
}

func TestApplyPrivacy_SuppressesSmallRows(t *testing.T) {
	r := &Report{
		Sections: []DimensionRow{
			{Key: "big", Impressions: 500, Clicks: 40},
			{Key: "thin_clicks", Impressions: 500, Clicks: 9},
			{Key: "thin_impressions", Impressions: 150, Clicks: 40},
		},
	}
	out := ApplyPrivacy(r, partnerdomain.TierBasic)
	if len(out.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(out.Sections))
	}
	if out.Sections[0].Key != "big" {
		t.Errorf("surviving row = %q, want %q", out.Sections[0].Key, "big")
	}
	// every surviving row satisfies both minimums
	th := ThresholdsFor(partnerdomain.TierBasic)
	for _, row := range out.Sections {
		if row.Clicks < th.MinClicks || row.Impressions < th.MinImpressions {
			t.Errorf("row %q below thresholds: %d clicks / %d impressions", row.Key, row.Clicks, row.Impressions)
		}
	}
}

func TestApplyPrivacy_TierChangesOutcome(t *testing.T) {
	r := &Report{
		Sections: []DimensionRow{
			{Key: "mid", Impressions: 100, Clicks: 5},
		},
	}
	if out := ApplyPrivacy(r, partnerdomain.TierBasic); len(out.Sections) != 0 {
		t.Errorf("basic tier kept %d rows, want 0", len(out.Sections))
	}
	if out := ApplyPrivacy(r, partnerdomain.TierPro); len(out.Sections) != 1 {
		t.Errorf("pro tier kept %d rows, want 1", len(out.Sections))
	}
}

func TestApplyPrivacy_TopN(t *testing.T) {
	var rows []DimensionRow
	for i := 0; i < 10; i++ {
		rows = append(rows, DimensionRow{Key: string(rune('a' + i)), Impressions: 1000, Clicks: 100 - i})
	}
	r := &Report{Providers: rows}
	out := ApplyPrivacy(r, partnerdomain.TierBasic)
	if len(out.Providers) != 5 {
		t.Fatalf("len(Providers) = %d, want 5", len(out.Providers))
	}
	// rows arrive sorted by clicks; the clamp keeps the head
	if out.Providers[0].Key != "a" || out.Providers[4].Key != "e" {
		t.Errorf("kept rows %q..%q, want a..e", out.Providers[0].Key, out.Providers[4].Key)
	}
}

func TestApplyPrivacy_VolatilityTierGated(t *testing.T) {
	r := &Report{
		DiscountVolatility: []VolatilityRow{{Category: "kitchen", Samples: 8, Mean: 0.2, StdDev: 0.05}},
	}
	if out := ApplyPrivacy(r, partnerdomain.TierBasic); out.DiscountVolatility != nil {
		t.Errorf("basic tier DiscountVolatility = %v, want nil", out.DiscountVolatility)
	}
	out := ApplyPrivacy(r, partnerdomain.TierPro)
	if len(out.DiscountVolatility) != 1 {
		t.Errorf("pro tier len(DiscountVolatility) = %d, want 1", len(out.DiscountVolatility))
	}
}

func TestApplyPrivacy_DoesNotMutateInput(t *testing.T) {
	r := &Report{
		Sections: []DimensionRow{
			{Key: "big", Impressions: 500, Clicks: 40},
			{Key: "thin", Impressions: 1, Clicks: 1},
		},
		Momentum: []MomentumRow{{Category: "kitchen", Delta: 0.5}},
	}
	_ = ApplyPrivacy(r, partnerdomain.TierBasic)
	if len(r.Sections) != 2 {
		t.Errorf("input Sections mutated: len = %d, want 2", len(r.Sections))
	}
	if len(r.Momentum) != 1 {
		t.Errorf("input Momentum mutated: len = %d, want 1", len(r.Momentum))
	}
}

func TestApplyPrivacy_TotalsUntouched(t *testing.T) {
	r := &Report{
		Totals: Totals{Impressions: 3, Clicks: 1, CTR: 1.0 / 3.0, EstRevenueCents: 12},
		Sections: []DimensionRow{
			{Key: "thin", Impressions: 3, Clicks: 1},
		},
	}
	out := ApplyPrivacy(r, partnerdomain.TierBasic)
	if out.Totals != r.Totals {
		t.Errorf("Totals = %+v, want %+v", out.Totals, r.Totals)
	}
}
