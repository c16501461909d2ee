// Package domain holds the partner registry model. Partner onboarding and
// billing live in the admin console; this service only reads the registry to
// authenticate, rate-limit, and tier partner API calls.
package domain

// Tier is a partner's subscription level. It controls privacy-threshold
// strictness and which report sections the partner receives.
type Tier string

const (
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// ScopeSignalsRead is required to call the partner signals endpoint.
const ScopeSignalsRead = "signals:read"

// Partner is one row of the partner registry.
type Partner struct {
	Key                string
	Name               string
	Enabled            bool
	Scopes             []string
	RateLimitPerMinute int
	MaxLimit           int
	Tier               Tier
	// SecretHash is the bcrypt hash of the partner's API secret.
	SecretHash     string
	BillingEnabled bool
}

// HasScope reports whether the partner holds the given scope.
func (p *Partner) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
