package domain

import "testing"

func TestEffectiveCategory(t *testing.T) {
	cases := []struct {
		name string
		deal DealSnapshot
		want string
	}{
		{"override wins", DealSnapshot{Category: "electronics", CategoryOverride: "kitchen"}, "kitchen"},
		{"base category", DealSnapshot{Category: "electronics"}, "electronics"},
		{"nothing set", DealSnapshot{}, "unknown"},
		{"override only", DealSnapshot{CategoryOverride: "kitchen"}, "kitchen"},
	}
	for _, c := range cases {
		if got := c.deal.EffectiveCategory(); got != c.want {
			t.Errorf("%s: EffectiveCategory() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDiscountFraction(t *testing.T) {
	d := DealSnapshot{OldPriceCents: 10000, CurrentPriceCents: 7500}
	frac, ok := d.DiscountFraction()
	if !ok {
		t.Fatal("DiscountFraction() ok = false, want true")
	}
	if frac != 0.25 {
		t.Errorf("DiscountFraction() = %v, want 0.25", frac)
	}
}

func TestDiscountFraction_NoOldPrice(t *testing.T) {
	for _, d := range []DealSnapshot{
		{OldPriceCents: 0, CurrentPriceCents: 500},
		{OldPriceCents: -100, CurrentPriceCents: 500},
	} {
		if _, ok := d.DiscountFraction(); ok {
			t.Errorf("DiscountFraction() ok = true for old price %d, want false", d.OldPriceCents)
		}
	}
}
