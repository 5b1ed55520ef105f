package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ProviderTwelveData = "twelvedata"
	ProviderFake       = "fake"
)

type Config struct {
	// Common
	Env      string `yaml:"env" default:"local"`
	LogLevel string `yaml:"log_level" default:"info" validate:"oneof=debug info warn error"`
	// API
	Port               string        `yaml:"port" default:"8080" validate:"required,numeric"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins" default:"[\"*\"]"`
	MetricsEnabled     bool          `yaml:"metrics_enabled" default:"true"`
	// Provider
	Provider          string        `yaml:"provider" default:"twelvedata" validate:"oneof=twelvedata fake"`
	TwelveDataAPIBase string        `yaml:"twelvedata_api_base" default:"https://api.twelvedata.com" validate:"required,url"`
	RequestTimeout    time.Duration `yaml:"request_timeout" default:"10s" validate:"gt=0"`
	// Retries of network-level failures only; HTTP statuses are never retried.
	UpstreamTransportRetries uint64 `yaml:"upstream_transport_retries" default:"0" validate:"lte=3"`
	// IANA zone for quote timestamps and the time series "today".
	Timezone string `yaml:"timezone" default:"Local"`
}

var validate = validator.New()

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// Load applies defaults, then the YAML file named by CONFIG_FILE if set, then
// environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("config defaults: %w", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return cfg, fmt.Errorf("invalid config: timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Provider = getEnv("PROVIDER", cfg.Provider)
	cfg.TwelveDataAPIBase = getEnv("TWELVEDATA_API_BASE", cfg.TwelveDataAPIBase)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	if v := os.Getenv("REQUEST_TIMEOUT_MS"); v != "" {
		if ms := atoiDef(v, 0); ms > 0 {
			cfg.RequestTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("UPSTREAM_TRANSPORT_RETRIES"); v != "" {
		if n := atoiDef(v, -1); n >= 0 {
			cfg.UpstreamTransportRetries = uint64(n)
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitCSV(v)
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MetricsEnabled = b
		}
	}
}

// Location resolves Timezone; "Local" and empty mean the process zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// APIKey reads the provider key from the environment. It is read per request
// and never stored in Config.
func APIKey() string {
	return os.Getenv("TWELVEDATA_API_KEY")
}

var ErrMissingAPIKey = errors.New("TWELVEDATA_API_KEY is not set")

// CheckAPIKey is the readiness check for a provider that needs a key.
func CheckAPIKey() error {
	if strings.TrimSpace(APIKey()) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
