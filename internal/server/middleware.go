package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendsinusa/dealsignals/internal/alert"
	alertdomain "github.com/trendsinusa/dealsignals/internal/alert/domain"
	"github.com/trendsinusa/dealsignals/internal/governance"
	"github.com/trendsinusa/dealsignals/internal/metrics"
)

// GovernanceHeader is the non-authoritative informational header attached to
// allowed-but-flagged partner calls.
const GovernanceHeader = "x-governance"

const bearerPrefix = "bearer "

// Dedupe windows for governance bookkeeping writes. Suspension records last
// longer so one CRITICAL row covers a burst of rejected calls.
const (
	suspendDedupeWindow  = time.Hour
	throttleDedupeWindow = 10 * time.Minute
	violationDedupe      = 15 * time.Minute
)

// requestMetrics instruments every request with count and duration, keyed
// by route pattern (not raw path) to bound label cardinality.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// publicRateLimit applies the per-IP fixed-window limit to the public
// tracking endpoints.
func (d Deps) publicRateLimit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := d.Cfg.PublicRatePerMinute
		res := d.Limiter.Allow("public:"+scope+":"+c.ClientIP(), limit, time.Minute)
		if !res.OK {
			metrics.RateLimitRejectionsTotal.WithLabelValues("public").Inc()
			c.Header("Retry-After", strconv.Itoa(res.RetryAfterSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":             "rate limit exceeded",
				"retryAfterSeconds": res.RetryAfterSeconds,
			})
			return
		}
		c.Next()
	}
}

// partnerAuth validates the Bearer partner token and loads the registry row.
// Partner callers never see internal detail: auth failures are a uniform 401.
func (d Deps) partnerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		key, _, err := d.Tokens.ValidatePartnerToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		p, err := d.Partners.GetByKey(c.Request.Context(), key)
		if err != nil {
			log.Printf("server: partner lookup %s failed: %v", key, err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
			return
		}
		if p == nil || !p.Enabled {
			d.recordViolation(c, key, alert.RuleTokenInvalid, "deny", alertdomain.SeverityWarning, "valid token for unknown or disabled partner")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		setPartner(c, p)
		c.Next()
	}
}

// governanceGate enforces the partner's computed enforcement tier before the
// call reaches the aggregation engine.
func (d Deps) governanceGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := partnerFrom(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		st := d.Governance.Evaluate(c.Request.Context(), p.Key)
		metrics.GovernanceDecisionsTotal.WithLabelValues(st.Action.String()).Inc()

		switch st.Action {
		case governance.ActionSuspend, governance.ActionTerminate:
			// 404 rather than 403: a suspended partner must not be able to
			// confirm the endpoint exists.
			d.recordViolation(c, p.Key, alert.RuleSuspended, st.Action.String(), alertdomain.SeverityCritical, "")
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case governance.ActionThrottle:
			limit := governance.ThrottledLimit(p.RateLimitPerMinute)
			res := d.Limiter.Allow("governance:throttle:"+p.Key, limit, time.Minute)
			if !res.OK {
				metrics.RateLimitRejectionsTotal.WithLabelValues("governance").Inc()
				d.recordViolation(c, p.Key, alert.RuleThrottled, "throttle", alertdomain.SeverityError, "")
				c.Header("Retry-After", strconv.Itoa(res.RetryAfterSeconds))
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error":             "rate limit exceeded",
					"retryAfterSeconds": res.RetryAfterSeconds,
				})
				return
			}
			c.Header(GovernanceHeader, "throttle")
		case governance.ActionWarn:
			// warn itself is not alert-worthy; only escalation boundaries are
			c.Header(GovernanceHeader, "warn")
		}
		c.Next()
	}
}

// partnerRateLimit applies the partner's configured per-minute limit.
func (d Deps) partnerRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := partnerFrom(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		limit := p.RateLimitPerMinute
		if limit <= 0 {
			limit = 60
		}
		res := d.Limiter.Allow("partner:"+p.Key, limit, time.Minute)
		if !res.OK {
			metrics.RateLimitRejectionsTotal.WithLabelValues("partner").Inc()
			c.Header("Retry-After", strconv.Itoa(res.RetryAfterSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":             "rate limit exceeded",
				"retryAfterSeconds": res.RetryAfterSeconds,
			})
			return
		}
		c.Next()
	}
}

// recordViolation writes a deduplicated governance alert. Best-effort:
// failures are logged and never affect the response. Window length depends
// on severity so suspension rows are not re-written per request.
func (d Deps) recordViolation(c *gin.Context, partnerKey string, rule alert.Rule, action string, severity alertdomain.Severity, details string) {
	if d.Sink == nil {
		return
	}
	window := violationDedupe
	switch severity {
	case alertdomain.SeverityCritical:
		window = suspendDedupeWindow
	case alertdomain.SeverityError:
		window = throttleDedupeWindow
	}
	if err := d.Sink.RecordOnce(c.Request.Context(), partnerKey, rule, action, severity, details, window); err != nil {
		log.Printf("server: governance alert %s/%s for %s failed: %v", rule, action, partnerKey, err)
	}
}

// extractBearer returns the Bearer token from an Authorization header value,
// or "" if missing or malformed.
func extractBearer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
