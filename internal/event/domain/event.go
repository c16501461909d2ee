// Package domain holds the event model for the append-only click/impression log.
package domain

import (
	"strings"
	"time"
)

// Kind classifies an event row.
type Kind string

const (
	// KindImpression marks synthetic events emitted by the pages themselves
	// (impressions and other view markers); Href carries an event:// sentinel.
	KindImpression Kind = "impression"
	// KindOutbound marks an outbound affiliate click; Href is the real
	// destination URL.
	KindOutbound Kind = "outbound"
)

// SyntheticScheme prefixes the Href of synthetic events: event://<name>.
const SyntheticScheme = "event://"

// ImpressionHref is the sentinel Href for impression events.
const ImpressionHref = SyntheticScheme + "impression"

// Event is one row of the append-only event log. Rows are never mutated.
// Attribution is always present and always decodable (the codec fills
// defaults); UserAgent is retained for debugging only and never aggregated.
type Event struct {
	ID          string
	OccurredAt  time.Time
	Kind        Kind
	Href        string
	ASIN        string
	DealID      string
	Attribution string
	UserAgent   string
}

// IsImpression reports whether the event is an impression marker.
func (e *Event) IsImpression() bool {
	return e.Href == ImpressionHref
}

// IsSynthetic reports whether the event carries an event:// sentinel Href
// rather than a real outbound URL.
func (e *Event) IsSynthetic() bool {
	return strings.HasPrefix(e.Href, SyntheticScheme)
}
