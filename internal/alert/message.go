// Package alert provides the deduplicated write path into the alert log and
// the governance message convention layered on top of it.
//
// Governance rows share the log with operational alerts and are identified
// only by the message format below. The governance engine counts alerts by
// prefix-matching this format, so any formatting change silently removes
// rows from governance accounting; treat it as a wire protocol.
package alert

import "strings"

// GovernanceNamespace prefixes every governance bookkeeping message.
const GovernanceNamespace = "gov:"

// GovernanceType is the alert Type for governance bookkeeping rows.
const GovernanceType = "partner_governance"

// Rule names the partner-abuse condition that produced a governance alert.
// Closed set; adding a rule is a protocol change.
type Rule string

const (
	RuleTokenInvalid       Rule = "token_invalid"
	RuleOverLimitRequested Rule = "over_limit_requested"
	RuleScopeMissing       Rule = "scope_missing"
	RuleBillingDisabled    Rule = "billing_disabled"
	RuleThrottled          Rule = "throttled_due_to_violations"
	RuleSuspended          Rule = "suspended_due_to_violations"
)

// GovernanceMessage is the parsed form of a governance alert message.
type GovernanceMessage struct {
	PartnerKey string
	Rule       Rule
	Action     string
	Details    string
}

// RenderGovernanceMessage renders the fixed message format:
//
//	gov:partner=<key> rule=<rule> action=<action> [details=<text>]
func RenderGovernanceMessage(partnerKey string, rule Rule, action, details string) string {
	var b strings.Builder
	b.WriteString(GovernanceNamespace)
	b.WriteString("partner=")
	b.WriteString(partnerKey)
	b.WriteString(" rule=")
	b.WriteString(string(rule))
	b.WriteString(" action=")
	b.WriteString(action)
	if details != "" {
		b.WriteString(" details=")
		b.WriteString(details)
	}
	return b.String()
}

// GovernancePrefix returns the message prefix identifying all governance
// alerts for one partner, used for unresolved-alert counting.
func GovernancePrefix(partnerKey string) string {
	return GovernanceNamespace + "partner=" + partnerKey + " "
}

// ParseGovernanceMessage parses a rendered governance message. It returns
// ok=false for messages outside the governance namespace or missing the
// mandatory partner/rule/action fields. details, when present, is the rest
// of the message verbatim (it may contain spaces).
func ParseGovernanceMessage(s string) (GovernanceMessage, bool) {
	var m GovernanceMessage
	if !strings.HasPrefix(s, GovernanceNamespace) {
		return m, false
	}
	rest := strings.TrimPrefix(s, GovernanceNamespace)

	rest, ok := eatField(rest, "partner=", &m.PartnerKey)
	if !ok {
		return GovernanceMessage{}, false
	}
	var rule string
	rest, ok = eatField(rest, "rule=", &rule)
	if !ok {
		return GovernanceMessage{}, false
	}
	m.Rule = Rule(rule)

	if !strings.HasPrefix(rest, "action=") {
		return GovernanceMessage{}, false
	}
	rest = strings.TrimPrefix(rest, "action=")
	if i := strings.Index(rest, " details="); i >= 0 {
		m.Action = rest[:i]
		m.Details = rest[i+len(" details="):]
	} else {
		m.Action = rest
	}
	if m.PartnerKey == "" || m.Rule == "" || m.Action == "" {
		return GovernanceMessage{}, false
	}
	return m, true
}

// eatField consumes "<prefix><token> " from s into dst.
func eatField(s, prefix string, dst *string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}
	s = strings.TrimPrefix(s, prefix)
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return s, false
	}
	*dst = s[:i]
	return s[i+1:], true
}
