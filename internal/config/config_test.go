package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("LOCK_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Port == "" || cfg.Currency != "USD" || cfg.CurrencyMinorUnits != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LockTTL != 30*time.Second || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected durations: ttl=%s timeout=%s", cfg.LockTTL, cfg.RequestTimeout)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("LOCK_TTL", "5s")
	t.Setenv("RECOMMENDATION_MAX_RESULTS", "7")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.StoreDriver != StoreSQLite || cfg.LockTTL != 5*time.Second || cfg.RecommendationMaxResults != 7 || !cfg.PaymentGatewayMock {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Env:                "development",
			StoreDriver:        StoreMemory,
			LockDriver:         LockMemory,
			LockTTL:            time.Second,
			EventsDriver:       EventsLocal,
			TracingExporter:    TracingNone,
			Currency:           "USD",
			CurrencyMinorUnits: 2,
			RequestTimeout:     time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown store", mutate: func(c *Config) { c.StoreDriver = "mongo" }, wantErr: "STORE_DRIVER"},
		{name: "postgres without url", mutate: func(c *Config) { c.StoreDriver = StorePostgres }, wantErr: "DATABASE_URL"},
		{name: "unknown lock", mutate: func(c *Config) { c.LockDriver = "etcd" }, wantErr: "LOCK_DRIVER"},
		{name: "redis lock without ttl", mutate: func(c *Config) { c.LockDriver = LockRedis; c.LockTTL = 0 }, wantErr: "LOCK_TTL"},
		{name: "unknown events", mutate: func(c *Config) { c.EventsDriver = "kafka" }, wantErr: "EVENTS_DRIVER"},
		{name: "unknown tracing", mutate: func(c *Config) { c.TracingExporter = "jaeger" }, wantErr: "TRACING_EXPORTER"},
		{name: "bad currency", mutate: func(c *Config) { c.Currency = "DOLLAR" }, wantErr: "CURRENCY"},
		{name: "bad minor units", mutate: func(c *Config) { c.CurrencyMinorUnits = 9 }, wantErr: "CURRENCY_MINOR_UNITS"},
		{name: "no timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "REQUEST_TIMEOUT"},
		{name: "production needs payment token", mutate: func(c *Config) { c.Env = "production" }, wantErr: "MERCADOPAGO_ACCESS_TOKEN"},
		{name: "production with mock gateway", mutate: func(c *Config) { c.Env = "production"; c.PaymentGatewayMock = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
