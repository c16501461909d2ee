package alert

import "testing"

func TestRenderGovernanceMessage(t *testing.T) {
	got := RenderGovernanceMessage("acme-deals", RuleOverLimitRequested, "warn", "requested=500 max=50")
	want := "gov:partner=acme-deals rule=over_limit_requested action=warn details=requested=500 max=50"
	if got != want {
		t.Errorf("got = %q, want %q", got, want)
	}
}

func TestRenderGovernanceMessage_NoDetails(t *testing.T) {
	got := RenderGovernanceMessage("acme-deals", RuleSuspended, "suspend", "")
	want := "gov:partner=acme-deals rule=suspended_due_to_violations action=suspend"
	if got != want {
		t.Errorf("got = %q, want %q", got, want)
	}
}

func TestGovernancePrefix(t *testing.T) {
	got := GovernancePrefix("acme-deals")
	want := "gov:partner=acme-deals "
	if got != want {
		t.Errorf("got = %q, want %q", got, want)
	}
}

func TestParseGovernanceMessage_RoundTrip(t *testing.T) {
	cases := []GovernanceMessage{
		{PartnerKey: "acme-deals", Rule: RuleTokenInvalid, Action: "warn"},
		{PartnerKey: "bargain-bot", Rule: RuleThrottled, Action: "throttle", Details: "limit=15"},
		{PartnerKey: "p", Rule: RuleOverLimitRequested, Action: "warn", Details: "requested=500 max=50"},
	}
	for _, c := range cases {
		s := RenderGovernanceMessage(c.PartnerKey, c.Rule, c.Action, c.Details)
		got, ok := ParseGovernanceMessage(s)
		if !ok {
			t.Errorf("ParseGovernanceMessage(%q) ok = false, want true", s)
			continue
		}
		if got != c {
			t.Errorf("ParseGovernanceMessage(%q) = %+v, want %+v", s, got, c)
		}
	}
}

func TestParseGovernanceMessage_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"disk almost full",
		"gov:",
		"gov:partner=acme-deals",
		"gov:partner=acme-deals rule=token_invalid",
		"gov:rule=token_invalid action=warn",
	}
	for _, in := range inputs {
		if _, ok := ParseGovernanceMessage(in); ok {
			t.Errorf("ParseGovernanceMessage(%q) ok = true, want false", in)
		}
	}
}
