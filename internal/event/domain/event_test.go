package domain

import "testing"

func TestIsImpression(t *testing.T) {
	cases := []struct {
		href string
		want bool
	}{
		{ImpressionHref, true},
		{SyntheticScheme + "scroll_depth", false},
		{"https://example.com/dp/B000", false},
		{"", false},
	}
	for _, c := range cases {
		e := Event{Href: c.href}
		if got := e.IsImpression(); got != c.want {
			t.Errorf("IsImpression() with href %q = %v, want %v", c.href, got, c.want)
		}
	}
}

func TestIsSynthetic(t *testing.T) {
	cases := []struct {
		href string
		want bool
	}{
		{ImpressionHref, true},
		{SyntheticScheme + "newsletter_cta", true},
		{"https://example.com/dp/B000", false},
		{"", false},
	}
	for _, c := range cases {
		e := Event{Href: c.href}
		if got := e.IsSynthetic(); got != c.want {
			t.Errorf("IsSynthetic() with href %q = %v, want %v", c.href, got, c.want)
		}
	}
}
