package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Checkout CheckoutConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHAINFEED_APP_ENV" default:"dev"`
	Port         string `envconfig:"CHAINFEED_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CHAINFEED_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHAINFEED_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CheckoutConfig describes the external checkout redirect the storefront
// delegates payment to. The discount code tiers are fixed merchandising
// strings; the qualifying threshold applies to a single line's subtotal,
// not the cart total.
type CheckoutConfig struct {
	BaseURL             string `envconfig:"CHAINFEED_CHECKOUT_BASE_URL" default:"https://checkout.chainfeed.store/cart"`
	RefCode             string `envconfig:"CHAINFEED_CHECKOUT_REF_CODE" default:"chainfeed"`
	StandardDiscount    string `envconfig:"CHAINFEED_CHECKOUT_STANDARD_DISCOUNT" default:"HODL5"`
	HighTierDiscount    string `envconfig:"CHAINFEED_CHECKOUT_HIGH_TIER_DISCOUNT" default:"WHALE15"`
	QualifyingLineTotal string `envconfig:"CHAINFEED_CHECKOUT_QUALIFYING_LINE_TOTAL" default:"500"`
	ReturnPath          string `envconfig:"CHAINFEED_CHECKOUT_RETURN_PATH" default:"/order-complete"`
	PublicOrigin        string `envconfig:"CHAINFEED_PUBLIC_ORIGIN" default:"https://chainfeed.media"`
}

// Threshold parses the qualifying line total, falling back to 500 on a
// malformed value.
func (c CheckoutConfig) Threshold() decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(c.QualifyingLineTotal))
	if err != nil {
		return decimal.NewFromInt(500)
	}
	return value
}

const (
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendGorm   = "gorm"
)

type StorageConfig struct {
	Backend string        `envconfig:"CHAINFEED_STORAGE_BACKEND" default:"memory"`
	CartTTL time.Duration `envconfig:"CHAINFEED_STORAGE_CART_TTL" default:"720h"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendMemory, StorageBackendRedis, StorageBackendGorm:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", s.Backend)
}

type DBConfig struct {
	DSN        string `envconfig:"CHAINFEED_DB_DSN"`
	UseSQLite  bool   `envconfig:"CHAINFEED_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"CHAINFEED_SQLITE_PATH" default:"chainfeed.db"`

	MaxOpenConns    int           `envconfig:"CHAINFEED_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHAINFEED_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHAINFEED_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHAINFEED_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"CHAINFEED_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHAINFEED_REDIS_URL"`
	Address      string        `envconfig:"CHAINFEED_REDIS_ADDR"`
	Password     string        `envconfig:"CHAINFEED_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHAINFEED_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHAINFEED_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHAINFEED_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHAINFEED_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHAINFEED_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHAINFEED_REDIS_WRITE_TIMEOUT" default:"5s"`
}
