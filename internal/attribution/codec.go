// Package attribution encodes and decodes the compact attribution record
// carried on every click and impression event. The encoded string is the only
// contract between the write path (tracking/redirect endpoints) and every
// read path (dashboards, partner analytics, governance inputs), so the key
// set and default-filling rules here are a wire format: any change is a
// breaking protocol change.
package attribution

import "net/url"

// Field defaults. Classificatory fields fall back to DefaultUnknown so
// downstream grouping never produces empty keys; partner falls back to
// DefaultNone because "no partner" is a meaningful bucket of its own.
const (
	DefaultUnknown = "unknown"
	DefaultNone    = "none"
)

// Wire keys. Fixed set; never reuse or rename.
const (
	keyEvent      = "event"
	keySection    = "section"
	keyDealStatus = "dealStatus"
	keyCTA        = "cta"
	keyBadge      = "badge"
	keyProvider   = "provider"
	keySite       = "site"
	keyPartner    = "partner"
)

// Record is the decoded view of an attribution string. It is never persisted
// as a structured row; events store only the encoded form.
type Record struct {
	EventName    string
	Section      string
	DealStatus   string
	CTAVariant   string
	BadgeVariant string
	Provider     string
	SiteKey      string
	PartnerKey   string
}

// Encode renders r as an URL-query-string attribution record. event and site
// are always written; every other key is written only when the field carries
// a non-default value.
func Encode(r Record) string {
	v := url.Values{}
	v.Set(keyEvent, orDefault(r.EventName, DefaultUnknown))
	v.Set(keySite, orDefault(r.SiteKey, DefaultUnknown))
	setKnown(v, keySection, r.Section, DefaultUnknown)
	setKnown(v, keyDealStatus, r.DealStatus, DefaultUnknown)
	setKnown(v, keyCTA, r.CTAVariant, DefaultUnknown)
	setKnown(v, keyBadge, r.BadgeVariant, DefaultUnknown)
	setKnown(v, keyProvider, r.Provider, DefaultUnknown)
	setKnown(v, keyPartner, r.PartnerKey, DefaultNone)
	return v.Encode()
}

// Decode parses s into a Record. It never fails: a malformed string or any
// missing key resolves to the documented defaults, so attribution loss can
// degrade grouping but can never make an event unreadable.
func Decode(s string) Record {
	v, err := url.ParseQuery(s)
	if err != nil {
		v = url.Values{}
	}
	return Record{
		EventName:    getOr(v, keyEvent, DefaultUnknown),
		Section:      getOr(v, keySection, DefaultUnknown),
		DealStatus:   getOr(v, keyDealStatus, DefaultUnknown),
		CTAVariant:   getOr(v, keyCTA, DefaultUnknown),
		BadgeVariant: getOr(v, keyBadge, DefaultUnknown),
		Provider:     getOr(v, keyProvider, DefaultUnknown),
		SiteKey:      getOr(v, keySite, DefaultUnknown),
		PartnerKey:   getOr(v, keyPartner, DefaultNone),
	}
}

func setKnown(v url.Values, key, val, def string) {
	if val != "" && val != def {
		v.Set(key, val)
	}
}

func getOr(v url.Values, key, def string) string {
	if s := v.Get(key); s != "" {
		return s
	}
	return def
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
