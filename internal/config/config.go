package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"biteaffair/internal/auth"
	"biteaffair/internal/db"
	"biteaffair/internal/logging"
	"biteaffair/internal/otp"
	"biteaffair/internal/pricing"
	"biteaffair/internal/reconcile"
	"biteaffair/internal/storage"
	"biteaffair/internal/whatsapp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"

	CatalogEmbedded = "embedded"
	CatalogR2       = "r2"
)

type Config struct {
	App       AppConfig        `yaml:"app"`
	Logging   logging.Config   `yaml:"logging"`
	Session   SessionConfig    `yaml:"session"`
	Storage   StorageConfig    `yaml:"storage"`
	Redis     db.RedisConfig   `yaml:"redis"`
	Postgres  db.Config        `yaml:"postgres"`
	Catalog   CatalogConfig    `yaml:"catalog"`
	R2        storage.R2Config `yaml:"r2"`
	OTP       OTPConfig        `yaml:"otp"`
	WhatsApp  whatsapp.Config  `yaml:"whatsapp"`
	Checkout  pricing.Charges  `yaml:"checkout"`
	Reconcile ReconcileConfig  `yaml:"reconcile"`
	Metrics   MetricsConfig    `yaml:"metrics"`
}

type AppConfig struct {
	Name        string   `yaml:"name"`
	Environment string   `yaml:"environment"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type SessionConfig struct {
	Secret  string        `yaml:"secret"`
	TTL     time.Duration `yaml:"ttl"`
	MaxIdle time.Duration `yaml:"max_idle"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Prefix string `yaml:"prefix"`
}

type CatalogConfig struct {
	Source string `yaml:"source"`
	Prefix string `yaml:"prefix"`
}

type OTPConfig struct {
	otp.Config `yaml:",inline"`
	Gateway    otp.GatewayConfig `yaml:"gateway"`
}

type ReconcileConfig struct {
	EditWindow time.Duration `yaml:"edit_window"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads the YAML file at path after loading .env (outside production)
// and expanding ${VAR} references.
func Load(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "biteaffair"
	}
	if c.App.Port == 0 {
		c.App.Port = 8000
	}
	if len(c.App.CORSOrigins) == 0 {
		c.App.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = auth.DefaultSessionTTL
	}
	if c.Session.MaxIdle <= 0 {
		c.Session.MaxIdle = 30 * time.Minute
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "biteaffair:"
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogEmbedded
	}
	if c.Catalog.Prefix == "" {
		c.Catalog.Prefix = "catalog"
	}

	def := otp.DefaultConfig()
	if c.OTP.Length <= 0 {
		c.OTP.Length = def.Length
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = def.TTL
	}
	if c.OTP.Cooldown <= 0 {
		c.OTP.Cooldown = def.Cooldown
	}
	if c.OTP.MaxAttempts <= 0 {
		c.OTP.MaxAttempts = def.MaxAttempts
	}

	if c.WhatsApp.DeepLinkBase == "" {
		c.WhatsApp.DeepLinkBase = whatsapp.DefaultDeepLinkBase
	}
	if c.Checkout == (pricing.Charges{}) {
		c.Checkout = pricing.DefaultCharges()
	}
	if c.Reconcile.EditWindow <= 0 {
		c.Reconcile.EditWindow = reconcile.DefaultEditWindow
	}
}

// Validate fails fast on settings the selected drivers cannot run without.
func (c *Config) Validate() error {
	var missing []string

	if c.Session.Secret == "" {
		missing = append(missing, "session.secret")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Redis.Address == "" {
			missing = append(missing, "redis.address")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			missing = append(missing, "postgres.dsn")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Catalog.Source {
	case CatalogEmbedded:
	case CatalogR2:
		missing = append(missing, c.R2.Missing()...)
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if !c.OTP.TestMode && (c.OTP.Gateway.URL == "" || c.OTP.Gateway.AuthKey == "") {
		missing = append(missing, "otp.gateway.url", "otp.gateway.auth_key")
	}

	if len(missing) > 0 {
		return errors.New("missing config: " + strings.Join(missing, ", "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
