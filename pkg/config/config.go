package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "libcherie"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "LIBCHERIE_DB_DSN"
	EnvDBHost = "LIBCHERIE_DB_HOST"
	EnvDBUser = "LIBCHERIE_DB_USER"
	EnvDBName = "LIBCHERIE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Pricing      PricingConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.Pricing.Rate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LIBCHERIE_APP_ENV" required:"true"`
	Port         string `envconfig:"LIBCHERIE_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"LIBCHERIE_APP_BASE_URL" required:"true"`
	LogLevel     string `envconfig:"LIBCHERIE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LIBCHERIE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SuccessURL is where Stripe sends the shopper after a completed payment.
func (a AppConfig) SuccessURL() string {
	return strings.TrimRight(a.BaseURL, "/") + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
}

// CancelURL is where Stripe sends the shopper after abandoning payment.
func (a AppConfig) CancelURL() string {
	return strings.TrimRight(a.BaseURL, "/") + "/checkout/cancel"
}

type DBConfig struct {
	DSN    string `envconfig:"LIBCHERIE_DB_DSN"`
	Driver string `envconfig:"LIBCHERIE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LIBCHERIE_DB_HOST"`
	LegacyPort     int    `envconfig:"LIBCHERIE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LIBCHERIE_DB_USER"`
	LegacyPassword string `envconfig:"LIBCHERIE_DB_PASSWORD"`
	LegacyName     string `envconfig:"LIBCHERIE_DB_NAME"`
	LegacySSLMode  string `envconfig:"LIBCHERIE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LIBCHERIE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LIBCHERIE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LIBCHERIE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LIBCHERIE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LIBCHERIE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LIBCHERIE_REDIS_ADDR"`
	Password     string        `envconfig:"LIBCHERIE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LIBCHERIE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LIBCHERIE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LIBCHERIE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LIBCHERIE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LIBCHERIE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LIBCHERIE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey        string        `envconfig:"LIBCHERIE_STRIPE_API_KEY"`
	WebhookSecret string        `envconfig:"LIBCHERIE_STRIPE_WEBHOOK_SECRET"`
	Env           string        `envconfig:"LIBCHERIE_STRIPE_ENV" default:"test"`
	EventTTL      time.Duration `envconfig:"LIBCHERIE_STRIPE_EVENT_TTL" default:"720h"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// PricingConfig carries the storefront tax and shipping rules. Amounts are
// integer cents; the tax rate is a decimal string such as "0.14975" (QC
// GST+QST) so the rate survives the environment round-trip without float loss.
type PricingConfig struct {
	TaxRate                    string `envconfig:"LIBCHERIE_PRICING_TAX_RATE" default:"0.14975"`
	FreeShippingThresholdCents int64  `envconfig:"LIBCHERIE_PRICING_FREE_SHIPPING_THRESHOLD_CENTS" default:"10000"`
	FlatShippingFeeCents       int64  `envconfig:"LIBCHERIE_PRICING_FLAT_SHIPPING_FEE_CENTS" default:"1200"`
	Currency                   string `envconfig:"LIBCHERIE_PRICING_CURRENCY" default:"cad"`
}

// Rate parses the configured tax rate.
func (p PricingConfig) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.TaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: %w", p.TaxRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax rate %q must be non-negative", p.TaxRate)
	}
	return rate, nil
}

type CartConfig struct {
	TTL time.Duration `envconfig:"LIBCHERIE_CART_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LIBCHERIE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
