package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	alertdomain "github.com/trendsinusa/dealsignals/internal/alert/domain"
	partnerdomain "github.com/trendsinusa/dealsignals/internal/partner/domain"
)

func partnerSignalsRequest(t *testing.T, env *testEnv, p *partnerdomain.Partner) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/partner/signals", nil)
	req.Header.Set("Authorization", env.bearerFor(t, p))
	env.router.ServeHTTP(w, req)
	return w
}

func TestGovernanceGate_CleanPartnerHasNoHeader(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	env.partners.partners[p.Key] = p

	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if h := w.Header().Get(GovernanceHeader); h != "" {
		t.Errorf("%s = %q for clean partner, want empty", GovernanceHeader, h)
	}
}

func TestGovernanceGate_WarnHeader(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	env.partners.partners[p.Key] = p
	env.alerts.seedGovernanceAlerts(p.Key, 2, alertdomain.SeverityWarning)

	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; warn must not block the call", w.Code, http.StatusOK)
	}
	if h := w.Header().Get(GovernanceHeader); h != "warn" {
		t.Errorf("%s = %q, want %q", GovernanceHeader, h, "warn")
	}
}

func TestGovernanceGate_SuspendedIs404(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	env.partners.partners[p.Key] = p
	env.alerts.seedGovernanceAlerts(p.Key, 11, alertdomain.SeverityWarning)

	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d; suspension must look like a missing route", w.Code, http.StatusNotFound)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Errorf("body = %q, want generic not-found", w.Body.String())
	}

	// exactly one CRITICAL suspension row on top of the seeds, even across
	// repeated rejected calls
	partnerSignalsRequest(t, env, p)
	critical := 0
	for _, a := range env.alerts.alerts {
		if a.Severity == alertdomain.SeverityCritical {
			critical++
			if a.Noisy {
				t.Error("suspension alert is noisy, want operator-visible")
			}
			if !strings.Contains(a.Message, "rule=suspended_due_to_violations") {
				t.Errorf("suspension alert message = %q", a.Message)
			}
		}
	}
	if critical != 1 {
		t.Errorf("CRITICAL alerts = %d, want 1 (deduplicated)", critical)
	}
}

func TestGovernanceGate_TwoCriticalSuspend(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	env.partners.partners[p.Key] = p
	env.alerts.seedGovernanceAlerts(p.Key, 2, alertdomain.SeverityCritical)

	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d with 2 critical alerts, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGovernanceGate_Throttle(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	p.RateLimitPerMinute = 20 // throttled secondary limit: 5
	env.partners.partners[p.Key] = p
	env.alerts.seedGovernanceAlerts(p.Key, 5, alertdomain.SeverityWarning)

	for i := 0; i < 5; i++ {
		w := partnerSignalsRequest(t, env, p)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
		if h := w.Header().Get(GovernanceHeader); h != "throttle" {
			t.Errorf("call %d %s = %q, want %q", i+1, GovernanceHeader, h, "throttle")
		}
	}

	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("6th call status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing on throttled 429")
	}
	found := false
	for _, a := range env.alerts.alerts {
		if strings.Contains(a.Message, "rule=throttled_due_to_violations") {
			found = true
			if a.Severity != alertdomain.SeverityError {
				t.Errorf("throttle alert severity = %q, want %q", a.Severity, alertdomain.SeverityError)
			}
		}
	}
	if !found {
		t.Error("no throttled_due_to_violations alert recorded")
	}
}

func TestPartnerRateLimit(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	p.RateLimitPerMinute = 3
	env.partners.partners[p.Key] = p

	for i := 0; i < 3; i++ {
		if w := partnerSignalsRequest(t, env, p); w.Code != http.StatusOK {
			t.Fatalf("call %d status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("4th call status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestPublicRateLimit(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Cfg.PublicRatePerMinute = 2
	router := NewRouter(env.deps)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/out?url=https%3A%2F%2Fexample.com%2Fx", nil))
		if w.Code != http.StatusFound {
			t.Fatalf("call %d status = %d, want %d", i+1, w.Code, http.StatusFound)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/out?url=https%3A%2F%2Fexample.com%2Fx", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("3rd call status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestPartnerAuth_DisabledPartnerIs401(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	p.Enabled = false
	env.partners.partners[p.Key] = p

	w := partnerSignalsRequest(t, env, p)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if len(env.alerts.alerts) != 1 || !strings.Contains(env.alerts.alerts[0].Message, "rule=token_invalid") {
		t.Errorf("alerts = %v, want one token_invalid row", env.alerts.alerts)
	}
}

func TestPartnerAuth_RegistryOutageIs503(t *testing.T) {
	env := newTestEnv(t)
	p := testPartner("acme-deals", partnerdomain.TierPro)
	env.partners.partners[p.Key] = p
	bearer := env.bearerFor(t, p)
	env.partners.err = errTest

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/partner/signals", nil)
	req.Header.Set("Authorization", bearer)
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"  Bearer abc  ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := extractBearer(c.in); got != c.want {
			t.Errorf("extractBearer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
