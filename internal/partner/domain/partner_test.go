package domain

import "testing"

func TestHasScope(t *testing.T) {
	p := &Partner{Scopes: []string{"signals:read", "other:write"}}
	if !p.HasScope(ScopeSignalsRead) {
		t.Errorf("HasScope(%q) = false, want true", ScopeSignalsRead)
	}
	if p.HasScope("admin:all") {
		t.Error("HasScope(\"admin:all\") = true, want false")
	}

	empty := &Partner{}
	if empty.HasScope(ScopeSignalsRead) {
		t.Error("HasScope on partner with no scopes = true, want false")
	}
}
