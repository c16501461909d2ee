// seed inserts development sample data for local testing.
// Idempotent: partners and deals use ON CONFLICT DO NOTHING, and sample
// events are skipped when the events table is non-empty.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/trendsinusa/dealsignals/internal/attribution"
	"github.com/trendsinusa/dealsignals/internal/config"
	"github.com/trendsinusa/dealsignals/internal/db"
	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
	"github.com/trendsinusa/dealsignals/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	hasher := security.NewHasher(cfg.BcryptCost)

	partners := []struct {
		key, name, tier, secret string
		perMinute, maxLimit     int
	}{
		{"acme-deals", "Acme Deals Syndication", "pro", "acme-dev-secret", 120, 50},
		{"bargain-bot", "BargainBot", "basic", "bargain-dev-secret", 60, 20},
	}
	for _, p := range partners {
		hash, err := hasher.Hash([]byte(p.secret))
		if err != nil {
			log.Fatalf("hash secret for %s: %v", p.key, err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO partners (key, name, enabled, scopes, rate_limit_per_minute, max_limit, tier, secret_hash, billing_enabled)
			 VALUES ($1, $2, TRUE, $3, $4, $5, $6, $7, TRUE)
			 ON CONFLICT (key) DO NOTHING`,
			p.key, p.name, []string{"signals:read"}, p.perMinute, p.maxLimit, p.tier, hash)
		if err != nil {
			log.Fatalf("seed partner %s: %v", p.key, err)
		}
	}

	now := time.Now().UTC()
	deals := []struct {
		id, category string
		oldCents     int64
		currentCents int64
		expiresIn    time.Duration
	}{
		{"deal-espresso", "kitchen", 19900, 12900, 4 * time.Hour},
		{"deal-headphones", "electronics", 24900, 17400, 36 * time.Hour},
		{"deal-airfryer", "kitchen", 12900, 8900, 45 * time.Minute},
	}
	for _, d := range deals {
		expires := now.Add(d.expiresIn)
		_, err = pool.Exec(ctx,
			`INSERT INTO deals (id, category, old_price_cents, current_price_cents, expires_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			d.id, d.category, d.oldCents, d.currentCents, expires)
		if err != nil {
			log.Fatalf("seed deal %s: %v", d.id, err)
		}
	}

	var eventCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&eventCount); err != nil {
		log.Fatalf("count events: %v", err)
	}
	if eventCount > 0 {
		fmt.Println("events already present; skipping sample events")
		return
	}

	for i := 0; i < 200; i++ {
		rec := attribution.Record{
			EventName: "impression",
			Section:   "home_live",
			Provider:  "amazon",
			SiteKey:   "trendsinusa",
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO events (id, occurred_at, kind, href, deal_id, attribution)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), now.Add(-time.Duration(i)*time.Minute),
			string(eventdomain.KindImpression), eventdomain.ImpressionHref,
			"deal-espresso", attribution.Encode(rec))
		if err != nil {
			log.Fatalf("seed impression: %v", err)
		}
	}
	for i := 0; i < 12; i++ {
		rec := attribution.Record{
			EventName: "affiliate_click",
			Section:   "home_live",
			Provider:  "amazon",
			SiteKey:   "trendsinusa",
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO events (id, occurred_at, kind, href, deal_id, attribution)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), now.Add(-time.Duration(i*7)*time.Minute),
			string(eventdomain.KindOutbound), "https://www.amazon.com/dp/B0EXAMPLE",
			"deal-espresso", attribution.Encode(rec))
		if err != nil {
			log.Fatalf("seed click: %v", err)
		}
	}

	fmt.Println("seed complete")
}
