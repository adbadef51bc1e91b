package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "talentnest.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTAccessTTL      = "24h"
	defaultWhatsAppHost      = "api.whatsapp.com"
	defaultReconcileSchedule = "0 */15 * * * *"
	defaultConfigPath        = "config.yaml"
	defaultStorageDir        = "./uploads"
	defaultStoragePublicBase = "/static/uploads"
)

type Config struct {
	AppEnv    string          `yaml:"app_env"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	OIDC      OIDCConfig      `yaml:"oidc"`
	Log       LogConfig       `yaml:"log"`
	NATS      NATSConfig      `yaml:"nats"`
	Contact   ContactConfig   `yaml:"contact"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Storage   StorageConfig   `yaml:"storage"`
}

type HTTPConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// StorageConfig is the local directory for uploads and the URL prefix it
// is served under.
type StorageConfig struct {
	Dir        string `yaml:"dir"`
	PublicBase string `yaml:"public_base"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // postgres:// DSN or a SQLite file path
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	AccessTTL string        `yaml:"access_ttl"`
	accessTTL time.Duration
}

// AccessDuration returns the parsed access token lifetime.
func (j JWTConfig) AccessDuration() time.Duration { return j.accessTTL }

type OIDCConfig struct {
	IssuerURL string `yaml:"issuer_url"`
	ClientID  string `yaml:"client_id"`
}

func (o OIDCConfig) Enabled() bool { return o.IssuerURL != "" }

type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type ContactConfig struct {
	WhatsAppHost string `yaml:"whatsapp_host"`
}

type SchedulerConfig struct {
	ReconcileSchedule string `yaml:"reconcile_schedule"`
}

// Load reads .env, the optional YAML file at CONFIG_PATH and then applies
// environment overrides. A missing YAML file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path == "" {
		path = defaultConfigPath
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) overrideWithEnv() {
	setFromEnv(&c.AppEnv, "APP_ENV")
	setFromEnv(&c.HTTP.Addr, "HTTP_ADDR")
	setFromEnv(&c.Database.URL, "DATABASE_URL")
	setFromEnv(&c.JWT.Secret, "JWT_SECRET")
	setFromEnv(&c.JWT.AccessTTL, "JWT_ACCESS_TTL")
	setFromEnv(&c.OIDC.IssuerURL, "OIDC_ISSUER_URL")
	setFromEnv(&c.OIDC.ClientID, "OIDC_CLIENT_ID")
	setFromEnv(&c.Log.Level, "LOG_LEVEL")
	setFromEnv(&c.Log.Format, "LOG_FORMAT")
	setFromEnv(&c.NATS.URL, "NATS_URL")
	setFromEnv(&c.Contact.WhatsAppHost, "WHATSAPP_HOST")
	setFromEnv(&c.Scheduler.ReconcileSchedule, "RECONCILE_SCHEDULE")
	setFromEnv(&c.Storage.Dir, "STORAGE_DIR")
	setFromEnv(&c.Storage.PublicBase, "STORAGE_PUBLIC_BASE")

	// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.HTTP.CORSAllowedOrigins = append(c.HTTP.CORSAllowedOrigins, o)
			}
		}
	}
}

func (c *Config) applyDefaults() {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	if c.AppEnv == "" {
		c.AppEnv = "dev"
	}
	setDefault(&c.HTTP.Addr, defaultHTTPAddr)
	setDefault(&c.Database.URL, defaultDatabaseURL)
	setDefault(&c.JWT.Secret, defaultJWTSecret)
	setDefault(&c.JWT.AccessTTL, defaultJWTAccessTTL)
	setDefault(&c.Log.Level, "info")
	setDefault(&c.Log.Format, "text")
	setDefault(&c.Contact.WhatsAppHost, defaultWhatsAppHost)
	setDefault(&c.Scheduler.ReconcileSchedule, defaultReconcileSchedule)
	setDefault(&c.Storage.Dir, defaultStorageDir)
	setDefault(&c.Storage.PublicBase, defaultStoragePublicBase)
	c.Storage.PublicBase = "/" + strings.Trim(c.Storage.PublicBase, "/")
}

func validateConfig(cfg *Config) error {
	ttl, err := time.ParseDuration(cfg.JWT.AccessTTL)
	if err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_TTL value %q: %w", cfg.JWT.AccessTTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	cfg.JWT.accessTTL = ttl

	format := strings.ToLower(cfg.Log.Format)
	if format != "json" && format != "text" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, text")
	}

	if strings.ContainsAny(cfg.Contact.WhatsAppHost, "/?# ") {
		return fmt.Errorf("WHATSAPP_HOST must be a bare host name")
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.Scheduler.ReconcileSchedule); err != nil {
		return fmt.Errorf("invalid RECONCILE_SCHEDULE %q: %w", cfg.Scheduler.ReconcileSchedule, err)
	}

	if cfg.Storage.PublicBase == "/" {
		return fmt.Errorf("STORAGE_PUBLIC_BASE must not be the root path")
	}

	if cfg.OIDC.Enabled() && cfg.OIDC.ClientID == "" {
		return fmt.Errorf("OIDC_CLIENT_ID must be set when OIDC_ISSUER_URL is set")
	}

	if cfg.IsProdLike() && isEmptyOrDefault(cfg.JWT.Secret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}

	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func setFromEnv(dst *string, name string) {
	if val := strings.TrimSpace(os.Getenv(name)); val != "" {
		*dst = val
	}
}

func setDefault(dst *string, def string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = def
	}
}
