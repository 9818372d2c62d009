package config

import (
	"fmt"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	LockMemory = "memory"
	LockRedis  = "redis"

	EventsLocal = "local"
	EventsRedis = "redis"

	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingOTLP   = "otlp"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StoreDriver      string `mapstructure:"STORE_DRIVER"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DBMaxConns       int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns       int32  `mapstructure:"DB_MIN_CONNS"`
	SQLitePath       string `mapstructure:"SQLITE_PATH"`
	AWSRegion        string `mapstructure:"AWS_REGION"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`
	FlowsTable       string `mapstructure:"FLOWS_TABLE"`
	AuditTable       string `mapstructure:"AUDIT_TABLE"`

	LockDriver   string        `mapstructure:"LOCK_DRIVER"`
	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	LockTTL      time.Duration `mapstructure:"LOCK_TTL"`
	EventsDriver string        `mapstructure:"EVENTS_DRIVER"`

	CatalogFile          string `mapstructure:"CATALOG_FILE"`
	AuditDigestAlgorithm string `mapstructure:"AUDIT_DIGEST_ALGORITHM"`
	AuditDigestKey       string `mapstructure:"AUDIT_DIGEST_KEY"`

	Currency                 string `mapstructure:"CURRENCY"`
	CurrencyMinorUnits       int32  `mapstructure:"CURRENCY_MINOR_UNITS"`
	RecommendationMaxResults int    `mapstructure:"RECOMMENDATION_MAX_RESULTS"`

	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	MercadoPagoAccessToken string `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentGatewayMock     bool   `mapstructure:"PAYMENT_GATEWAY_MOCK"`

	TracingExporter   string `mapstructure:"TRACING_EXPORTER"`
	AuditExportBucket string `mapstructure:"AUDIT_EXPORT_BUCKET"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"STORE_DRIVER", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "SQLITE_PATH",
	"AWS_REGION", "DYNAMODB_ENDPOINT", "FLOWS_TABLE", "AUDIT_TABLE",
	"LOCK_DRIVER", "REDIS_ADDR", "LOCK_TTL", "EVENTS_DRIVER",
	"CATALOG_FILE", "AUDIT_DIGEST_ALGORITHM", "AUDIT_DIGEST_KEY",
	"CURRENCY", "CURRENCY_MINOR_UNITS", "RECOMMENDATION_MAX_RESULTS",
	"REQUEST_TIMEOUT", "MERCADOPAGO_ACCESS_TOKEN", "PAYMENT_GATEWAY_MOCK",
	"TRACING_EXPORTER", "AUDIT_EXPORT_BUCKET",
}

// Load reads the environment (.env is loaded by godotenv on import) into a Config.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDynamoDB)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("SQLITE_PATH", "data/telehealth_flow.db")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("FLOWS_TABLE", "flows")
	v.SetDefault("AUDIT_TABLE", "flow_audit_entries")
	v.SetDefault("LOCK_DRIVER", LockMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("LOCK_TTL", "30s")
	v.SetDefault("EVENTS_DRIVER", EventsLocal)
	v.SetDefault("AUDIT_DIGEST_ALGORITHM", "sha256")
	v.SetDefault("CURRENCY", "USD")
	v.SetDefault("CURRENCY_MINOR_UNITS", 2)
	v.SetDefault("RECOMMENDATION_MAX_RESULTS", 3)
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("PAYMENT_GATEWAY_MOCK", false)
	v.SetDefault("TRACING_EXPORTER", TracingNone)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate rejects unknown drivers and settings a chosen driver cannot run without.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDynamoDB, StoreSQLite, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of dynamodb, postgres, sqlite, memory, got %q", c.StoreDriver)
	}

	switch c.LockDriver {
	case LockMemory, LockRedis:
	default:
		return fmt.Errorf("LOCK_DRIVER must be memory or redis, got %q", c.LockDriver)
	}
	if c.LockDriver == LockRedis && c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive, got %s", c.LockTTL)
	}

	switch c.EventsDriver {
	case EventsLocal, EventsRedis:
	default:
		return fmt.Errorf("EVENTS_DRIVER must be local or redis, got %q", c.EventsDriver)
	}

	switch c.TracingExporter {
	case TracingNone, TracingStdout, TracingOTLP:
	default:
		return fmt.Errorf("TRACING_EXPORTER must be none, stdout or otlp, got %q", c.TracingExporter)
	}

	if len(c.Currency) != 3 {
		return fmt.Errorf("CURRENCY must be an ISO 4217 code, got %q", c.Currency)
	}
	if c.CurrencyMinorUnits < 0 || c.CurrencyMinorUnits > 4 {
		return fmt.Errorf("CURRENCY_MINOR_UNITS must be between 0 and 4, got %d", c.CurrencyMinorUnits)
	}
	if c.RecommendationMaxResults < 0 {
		return fmt.Errorf("RECOMMENDATION_MAX_RESULTS must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if !c.PaymentGatewayMock && c.MercadoPagoAccessToken == "" && !c.IsDev() {
		return fmt.Errorf("MERCADOPAGO_ACCESS_TOKEN is required unless PAYMENT_GATEWAY_MOCK is set")
	}
	return nil
}
