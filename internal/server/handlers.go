package server

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trendsinusa/dealsignals/internal/alert"
	alertdomain "github.com/trendsinusa/dealsignals/internal/alert/domain"
	"github.com/trendsinusa/dealsignals/internal/attribution"
	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
	"github.com/trendsinusa/dealsignals/internal/metrics"
	partnerdomain "github.com/trendsinusa/dealsignals/internal/partner/domain"
	"github.com/trendsinusa/dealsignals/internal/signals"
	"github.com/trendsinusa/dealsignals/internal/telemetry"
)

// trackRequest is the body of POST /track, emitted by the page bundles.
type trackRequest struct {
	Event      string `json:"event" binding:"required"`
	Site       string `json:"site" binding:"required"`
	Section    string `json:"section"`
	DealStatus string `json:"dealStatus"`
	CTA        string `json:"cta"`
	Badge      string `json:"badge"`
	Provider   string `json:"provider"`
	Partner    string `json:"partner"`
	DealID     string `json:"dealId"`
	ASIN       string `json:"asin"`
}

// handleTrack appends one synthetic event (impression or other marker).
func (d Deps) handleTrack(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event and site are required"})
		return
	}

	rec := attribution.Record{
		EventName:    req.Event,
		Section:      req.Section,
		DealStatus:   req.DealStatus,
		CTAVariant:   req.CTA,
		BadgeVariant: req.Badge,
		Provider:     req.Provider,
		SiteKey:      req.Site,
		PartnerKey:   req.Partner,
	}
	ev := &eventdomain.Event{
		ID:          uuid.New().String(),
		OccurredAt:  time.Now().UTC(),
		Kind:        eventdomain.KindImpression,
		Href:        eventdomain.SyntheticScheme + req.Event,
		ASIN:        req.ASIN,
		DealID:      req.DealID,
		Attribution: attribution.Encode(rec),
		UserAgent:   c.Request.UserAgent(),
	}
	if err := d.Events.Create(c.Request.Context(), ev); err != nil {
		log.Printf("server: track insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	metrics.EventsIngestedTotal.WithLabelValues(string(ev.Kind)).Inc()
	telemetry.EmitAsync(d.Emitter, ev)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// handleOut logs an outbound click and redirects to the destination. Click
// logging is best-effort here: a store outage must not strand the visitor,
// so insert failures are logged and the redirect still happens.
func (d Deps) handleOut(c *gin.Context) {
	target := c.Query("url")
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http(s) URL"})
		return
	}

	rec := attribution.Decode(c.Query("attr"))
	rec.EventName = "affiliate_click"
	if site := c.Query("site"); site != "" {
		rec.SiteKey = site
	}
	ev := &eventdomain.Event{
		ID:          uuid.New().String(),
		OccurredAt:  time.Now().UTC(),
		Kind:        eventdomain.KindOutbound,
		Href:        target,
		ASIN:        c.Query("asin"),
		DealID:      c.Query("deal"),
		Attribution: attribution.Encode(rec),
		UserAgent:   c.Request.UserAgent(),
	}
	if err := d.Events.Create(c.Request.Context(), ev); err != nil {
		log.Printf("server: click insert failed: %v", err)
	} else {
		metrics.EventsIngestedTotal.WithLabelValues(string(ev.Kind)).Inc()
		telemetry.EmitAsync(d.Emitter, ev)
	}
	c.Redirect(http.StatusFound, target)
}

// tokenRequest is the body of POST /api/v1/partner/token.
type tokenRequest struct {
	Key    string `json:"key" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// handlePartnerToken exchanges a partner key and secret for a short-lived
// bearer token. Failed exchanges are uniform 401s and feed governance
// accounting via the token_invalid rule.
func (d Deps) handlePartnerToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key and secret are required"})
		return
	}
	p, err := d.Partners.GetByKey(c.Request.Context(), req.Key)
	if err != nil {
		log.Printf("server: partner lookup %s failed: %v", req.Key, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
		return
	}
	if p == nil || !p.Enabled || d.Hasher.Compare(p.SecretHash, []byte(req.Secret)) != nil {
		d.recordViolation(c, req.Key, alert.RuleTokenInvalid, "deny", alertdomain.SeverityWarning, "token_exchange")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, expiresAt, err := d.Tokens.IssuePartnerToken(p.Key, p.Scopes, string(p.Tier))
	if err != nil {
		log.Printf("server: token issue for %s failed: %v", p.Key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt})
}

// handlePartnerSignals serves the governed, tier-filtered signals report for
// the authenticated partner's attributed traffic.
func (d Deps) handlePartnerSignals(c *gin.Context) {
	p := partnerFrom(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !p.HasScope(partnerdomain.ScopeSignalsRead) {
		d.recordViolation(c, p.Key, alert.RuleScopeMissing, "deny", alertdomain.SeverityWarning, partnerdomain.ScopeSignalsRead)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if !p.BillingEnabled {
		d.recordViolation(c, p.Key, alert.RuleBillingDisabled, "deny", alertdomain.SeverityWarning, "")
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "billing disabled"})
		return
	}

	maxRows := 0
	if raw := c.Query("limit"); raw != "" {
		requested, err := strconv.Atoi(raw)
		if err != nil || requested <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if requested > p.MaxLimit && p.MaxLimit > 0 {
			d.recordViolation(c, p.Key, alert.RuleOverLimitRequested, "clamp", alertdomain.SeverityWarning,
				"requested="+raw+" max="+strconv.Itoa(p.MaxLimit))
			requested = p.MaxLimit
		}
		maxRows = requested
	}

	q := signals.Query{
		Window:     windowParam(c),
		Tier:       p.Tier,
		PartnerKey: p.Key,
		MaxRows:    maxRows,
	}
	start := time.Now()
	report, err := d.Signals.Report(c.Request.Context(), q)
	if err != nil {
		metrics.SignalsRequestsTotal.WithLabelValues(string(p.Tier), "error").Inc()
		log.Printf("server: signals report for %s failed: %v", p.Key, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
		return
	}
	metrics.SignalsBuildDuration.Observe(time.Since(start).Seconds())
	metrics.SignalsRequestsTotal.WithLabelValues(string(p.Tier), "ok").Inc()

	c.JSON(http.StatusOK, Envelope{
		Meta: Meta{SchemaDate: SchemaDate, GeneratedAt: report.GeneratedAt, Truncated: report.Truncated},
		Data: report,
	})
}

// handleInternalSignals serves the ungoverned dashboard view at pro-tier
// richness. Reachable only on the internal network; no partner filter.
func (d Deps) handleInternalSignals(c *gin.Context) {
	q := signals.Query{
		Window:  windowParam(c),
		Tier:    partnerdomain.TierPro,
		SiteKey: c.Query("site"),
	}
	start := time.Now()
	report, err := d.Signals.Report(c.Request.Context(), q)
	if err != nil {
		metrics.SignalsRequestsTotal.WithLabelValues("internal", "error").Inc()
		log.Printf("server: internal signals failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
		return
	}
	metrics.SignalsBuildDuration.Observe(time.Since(start).Seconds())
	metrics.SignalsRequestsTotal.WithLabelValues("internal", "ok").Inc()
	c.JSON(http.StatusOK, Envelope{
		Meta: Meta{SchemaDate: SchemaDate, GeneratedAt: report.GeneratedAt, Truncated: report.Truncated},
		Data: report,
	})
}

// handleHealthz reports liveness and, when a Pinger is wired, store
// readiness.
func (d Deps) handleHealthz(c *gin.Context) {
	if d.Ready != nil {
		if err := d.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// windowParam parses the windowDays query param into a duration; 0 lets the
// engine apply its default.
func windowParam(c *gin.Context) time.Duration {
	raw := c.Query("windowDays")
	if raw == "" {
		return 0
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}
