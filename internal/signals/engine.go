package signals

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trendsinusa/dealsignals/internal/attribution"
	dealrepo "github.com/trendsinusa/dealsignals/internal/deal/repository"
	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
	eventrepo "github.com/trendsinusa/dealsignals/internal/event/repository"
	partnerdomain "github.com/trendsinusa/dealsignals/internal/partner/domain"
)

// Window bounds. Momentum needs two full weeks; anything past 30 days would
// blow the fetch cap long before it added signal.
const (
	DefaultWindow = 14 * 24 * time.Hour
	minWindow     = time.Hour
	maxWindow     = 30 * 24 * time.Hour
)

// Query selects the window, tier, and optional attribution filters for one
// report.
type Query struct {
	// Window is the lookback from now; clamped to [1h, 30d], default 14d.
	Window time.Duration
	// Tier controls privacy thresholds and output richness.
	Tier partnerdomain.Tier
	// SiteKey and PartnerKey, when set, keep only events whose decoded
	// attribution matches.
	SiteKey    string
	PartnerKey string
	// MaxRows further clamps every breakdown list when positive. It can
	// only tighten the tier's top-N, never widen it.
	MaxRows int
}

// Engine fetches a bounded event window, decodes attribution, resolves deal
// snapshots, and produces a privacy-filtered report. Stateless and safe for
// concurrent use; every call recomputes from scratch.
type Engine struct {
	events eventrepo.Repository
	deals  dealrepo.Repository
	tracer trace.Tracer
	nowF   func() time.Time
}

// NewEngine returns an Engine reading from the given repositories.
func NewEngine(events eventrepo.Repository, deals dealrepo.Repository) *Engine {
	return &Engine{
		events: events,
		deals:  deals,
		tracer: otel.Tracer("dealsignals/signals"),
		nowF:   func() time.Time { return time.Now().UTC() },
	}
}

// Report builds the signals report for q. Store read failures are returned
// to the caller; there is no silent empty result.
func (e *Engine) Report(ctx context.Context, q Query) (*Report, error) {
	window := q.Window
	if window <= 0 {
		window = DefaultWindow
	}
	if window < minWindow {
		window = minWindow
	}
	if window > maxWindow {
		window = maxWindow
	}
	now := e.nowF()
	since := now.Add(-window)

	ctx, span := e.tracer.Start(ctx, "signals.Report",
		trace.WithAttributes(
			attribute.String("signals.tier", string(q.Tier)),
			attribute.Int64("signals.window_hours", int64(window.Hours())),
		))
	defer span.End()

	events, err := e.events.FetchWindow(ctx, since, eventrepo.FetchFilters{})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	truncated := len(events) >= eventrepo.MaxWindowRows

	records := make([]attribution.Record, 0, len(events))
	kept := events[:0]
	for _, ev := range events {
		rec := attribution.Decode(ev.Attribution)
		if q.SiteKey != "" && rec.SiteKey != q.SiteKey {
			continue
		}
		if q.PartnerKey != "" && rec.PartnerKey != q.PartnerKey {
			continue
		}
		kept = append(kept, ev)
		records = append(records, rec)
	}
	events = kept

	dealIDs := distinctDealIDs(events)
	deals, err := e.deals.GetByIDs(ctx, dealIDs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	report := BuildReport(RollupInput{
		Events:      events,
		Records:     records,
		Deals:       deals,
		Now:         now,
		WindowStart: since,
		Truncated:   truncated,
	})
	span.SetAttributes(
		attribute.Int("signals.events", len(events)),
		attribute.Bool("signals.truncated", truncated),
	)
	out := ApplyPrivacy(report, q.Tier)
	if q.MaxRows > 0 {
		clampReport(out, q.MaxRows)
	}
	return out, nil
}

// clampReport truncates every breakdown list to at most n rows in place.
func clampReport(r *Report, n int) {
	if len(r.Sections) > n {
		r.Sections = r.Sections[:n]
	}
	if len(r.DealStates) > n {
		r.DealStates = r.DealStates[:n]
	}
	if len(r.Categories) > n {
		r.Categories = r.Categories[:n]
	}
	if len(r.Providers) > n {
		r.Providers = r.Providers[:n]
	}
	if len(r.Partners) > n {
		r.Partners = r.Partners[:n]
	}
	if len(r.Momentum) > n {
		r.Momentum = r.Momentum[:n]
	}
	if len(r.DiscountVolatility) > n {
		r.DiscountVolatility = r.DiscountVolatility[:n]
	}
}

func distinctDealIDs(events []eventdomain.Event) []string {
	seen := map[string]bool{}
	out := make([]string, 0, 32)
	for i := range events {
		id := events[i].DealID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
