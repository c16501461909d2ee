// Package domain holds the alert model for the generic append-only alert log.
// The same table carries human-visible operational alerts and governance
// bookkeeping rows; the two are distinguished only by message convention.
package domain

import "time"

// Severity orders alerts for feeds and governance accounting.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Alert is one row of the alert log. Rows are append-only and soft-resolved:
// ResolvedAt is the only field ever updated.
type Alert struct {
	ID        string
	CreatedAt time.Time
	Type      string
	Severity  Severity
	// Noisy alerts are excluded from human-facing alert feeds. Governance
	// bookkeeping rows are noisy unless CRITICAL.
	Noisy      bool
	Message    string
	ResolvedAt *time.Time
}

// Resolved reports whether the alert has been soft-resolved.
func (a *Alert) Resolved() bool {
	return a.ResolvedAt != nil
}
