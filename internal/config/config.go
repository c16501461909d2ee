// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// PartnerTokenSecret signs partner API tokens (HS256). Required in production.
	PartnerTokenSecret string `mapstructure:"PARTNER_TOKEN_SECRET"`
	// PartnerTokenIssuer is the iss claim on partner tokens.
	PartnerTokenIssuer string `mapstructure:"PARTNER_TOKEN_ISSUER"`
	// PartnerTokenAudience is the aud claim on partner tokens.
	PartnerTokenAudience string `mapstructure:"PARTNER_TOKEN_AUDIENCE"`
	// PartnerTokenTTL is the partner token lifetime (e.g. "1h").
	PartnerTokenTTL string `mapstructure:"PARTNER_TOKEN_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31) for partner secret hashes; default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// GovernanceCacheTTL is how long a partner's computed enforcement state is cached (e.g. "60s").
	GovernanceCacheTTL string `mapstructure:"GOVERNANCE_CACHE_TTL"`
	// GovernanceLookbackDays bounds how far back unresolved governance alerts count; default 30.
	GovernanceLookbackDays int `mapstructure:"GOVERNANCE_LOOKBACK_DAYS"`
	// PublicRatePerMinute is the per-IP fixed-window limit on the public track/redirect endpoints.
	PublicRatePerMinute int `mapstructure:"PUBLIC_RATE_PER_MINUTE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// Telemetry (optional). When Kafka brokers are set, accepted events are fanned out to Kafka.
	// KafkaBrokers is a comma-separated list of broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// KafkaTopic is the topic for the event fan-out (default dealsignals-events).
	KafkaTopic string `mapstructure:"KAFKA_TOPIC"`
	// OTLPEndpoint is the OTLP gRPC endpoint for traces (empty disables export).
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext OTLP connection even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PARTNER_TOKEN_SECRET", "")
	v.SetDefault("PARTNER_TOKEN_ISSUER", "dealsignals-auth")
	v.SetDefault("PARTNER_TOKEN_AUDIENCE", "dealsignals-partner-api")
	v.SetDefault("PARTNER_TOKEN_TTL", "1h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("GOVERNANCE_CACHE_TTL", "60s")
	v.SetDefault("GOVERNANCE_LOOKBACK_DAYS", 30)
	v.SetDefault("PUBLIC_RATE_PER_MINUTE", 120)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "dealsignals-events")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.Env == "production" && cfg.PartnerTokenSecret == "" {
		return nil, errors.New("config: PARTNER_TOKEN_SECRET must be set when APP_ENV=production")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.GovernanceLookbackDays <= 0 {
		cfg.GovernanceLookbackDays = 30
	}
	if cfg.PublicRatePerMinute <= 0 {
		cfg.PublicRatePerMinute = 120
	}

	return &cfg, nil
}

// TokenTTL parses PartnerTokenTTL as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.PartnerTokenTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// CacheTTL parses GovernanceCacheTTL as a time.Duration. Returns 60s if unset or invalid.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.GovernanceCacheTTL)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// GovernanceLookback returns the alert lookback window as a duration.
func (c *Config) GovernanceLookback() time.Duration {
	return time.Duration(c.GovernanceLookbackDays) * 24 * time.Hour
}

// KafkaBrokersList returns broker addresses from the comma-separated config.
// Used to decide if the event fan-out is enabled (non-empty list) and to create the producer.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
