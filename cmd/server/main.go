package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trendsinusa/dealsignals/internal/alert"
	alertrepo "github.com/trendsinusa/dealsignals/internal/alert/repository"
	"github.com/trendsinusa/dealsignals/internal/config"
	"github.com/trendsinusa/dealsignals/internal/db"
	dealrepo "github.com/trendsinusa/dealsignals/internal/deal/repository"
	eventrepo "github.com/trendsinusa/dealsignals/internal/event/repository"
	"github.com/trendsinusa/dealsignals/internal/governance"
	"github.com/trendsinusa/dealsignals/internal/metrics"
	partnerrepo "github.com/trendsinusa/dealsignals/internal/partner/repository"
	"github.com/trendsinusa/dealsignals/internal/ratelimit"
	"github.com/trendsinusa/dealsignals/internal/security"
	"github.com/trendsinusa/dealsignals/internal/server"
	"github.com/trendsinusa/dealsignals/internal/signals"
	"github.com/trendsinusa/dealsignals/internal/telemetry"
	otelsetup "github.com/trendsinusa/dealsignals/internal/telemetry/otel"
	"github.com/trendsinusa/dealsignals/internal/telemetry/producer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, "dealsignals-server", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	metrics.Register()

	events := eventrepo.NewPostgresRepository(pool)
	deals := dealrepo.NewPostgresRepository(pool)
	partners := partnerrepo.NewPostgresRepository(pool)
	alerts := alertrepo.NewPostgresRepository(pool)

	kafka := producer.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.KafkaTopic)
	var emitter telemetry.EventEmitter
	if kafka != nil {
		emitter = kafka
		log.Printf("event fan-out enabled: topic %s", cfg.KafkaTopic)
	}

	router := server.NewRouter(server.Deps{
		Cfg:        cfg,
		Events:     events,
		Partners:   partners,
		Signals:    signals.NewEngine(events, deals),
		Governance: governance.NewEngine(alerts, cfg.CacheTTL(), cfg.GovernanceLookback()),
		Sink:       alert.NewSink(alerts),
		Limiter:    ratelimit.NewFixedWindow(),
		Tokens:     security.NewTokenProvider([]byte(cfg.PartnerTokenSecret), cfg.PartnerTokenIssuer, cfg.PartnerTokenAudience, cfg.TokenTTL()),
		Hasher:     security.NewHasher(cfg.BcryptCost),
		Emitter:    emitter,
		Ready:      func(ctx context.Context) error { return db.Ready(ctx, pool) },
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// let in-flight async emits drain before closing the producer
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := kafka.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
