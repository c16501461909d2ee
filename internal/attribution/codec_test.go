package attribution

import (
	"strings"
	"testing"
)

func TestEncode_AlwaysSetsEventAndSite(t *testing.T) {
	s := Encode(Record{})
	if !strings.Contains(s, "event=unknown") {
		t.Errorf("encoded = %q, should contain event=unknown", s)
	}
	if !strings.Contains(s, "site=unknown") {
		t.Errorf("encoded = %q, should contain site=unknown", s)
	}
}

func TestEncode_OmitsUnknownFields(t *testing.T) {
	s := Encode(Record{EventName: "impression", SiteKey: "trendsinusa"})
	for _, key := range []string{"section=", "dealStatus=", "cta=", "badge=", "provider=", "partner="} {
		if strings.Contains(s, key) {
			t.Errorf("encoded = %q, should not contain %q for unset field", s, key)
		}
	}
}

func TestDecode_Defaults(t *testing.T) {
	r := Decode("")
	want := Record{
		EventName:    "unknown",
		Section:      "unknown",
		DealStatus:   "unknown",
		CTAVariant:   "unknown",
		BadgeVariant: "unknown",
		Provider:     "unknown",
		SiteKey:      "unknown",
		PartnerKey:   "none",
	}
	if r != want {
		t.Errorf("Decode(\"\") = %+v, want %+v", r, want)
	}
}

func TestDecode_PartialKeys(t *testing.T) {
	r := Decode("event=affiliate_click&provider=amazon")
	if r.EventName != "affiliate_click" {
		t.Errorf("EventName = %q, want %q", r.EventName, "affiliate_click")
	}
	if r.Provider != "amazon" {
		t.Errorf("Provider = %q, want %q", r.Provider, "amazon")
	}
	if r.Section != "unknown" {
		t.Errorf("Section = %q, want %q", r.Section, "unknown")
	}
	if r.PartnerKey != "none" {
		t.Errorf("PartnerKey = %q, want %q", r.PartnerKey, "none")
	}
}

func TestDecode_MalformedNeverFails(t *testing.T) {
	inputs := []string{
		"%zz%%%",
		"===&&&",
		"event=%GG",
		"no-equals-sign-at-all",
		";;;",
	}
	for _, in := range inputs {
		r := Decode(in)
		if r.EventName == "" || r.SiteKey == "" || r.PartnerKey == "" {
			t.Errorf("Decode(%q) produced empty fields: %+v", in, r)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []Record{
		{EventName: "impression", SiteKey: "trendsinusa"},
		{EventName: "affiliate_click", SiteKey: "trendsinusa", Provider: "amazon", Section: "home_live"},
		{
			EventName:    "affiliate_click",
			Section:      "deal_page",
			DealStatus:   "live",
			CTAVariant:   "buy_now",
			BadgeVariant: "hot",
			Provider:     "ebay",
			SiteKey:      "gadgetsusa",
			PartnerKey:   "acme-deals",
		},
		// explicit defaults survive the trip even though they are omitted on the wire
		{EventName: "unknown", SiteKey: "unknown", PartnerKey: "none"},
	}
	for _, r := range cases {
		in := r
		if in.Section == "" {
			in.Section = DefaultUnknown
		}
		if in.DealStatus == "" {
			in.DealStatus = DefaultUnknown
		}
		if in.CTAVariant == "" {
			in.CTAVariant = DefaultUnknown
		}
		if in.BadgeVariant == "" {
			in.BadgeVariant = DefaultUnknown
		}
		if in.Provider == "" {
			in.Provider = DefaultUnknown
		}
		if in.PartnerKey == "" {
			in.PartnerKey = DefaultNone
		}
		got := Decode(Encode(r))
		if got != in {
			t.Errorf("Decode(Encode(%+v)) = %+v, want %+v", r, got, in)
		}
	}
}
