package config

import (
	"fmt"
	"net/url"
	"time"

	"bookstore-client/internal/components/telemetry"
	"bookstore-client/lib/configutil"
)

// FileName is looked up from the working directory upwards, a sibling
// `bookstore.local.json5` overrides it.
const FileName = "bookstore.json5"

type Config struct {
	BaseUrl           string           `json:"base_url"`
	PageSize          int              `json:"page_size"`
	TimeoutSeconds    int              `json:"timeout_seconds"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	SessionDb         string           `json:"session_db"`
	LoginEntry        string           `json:"login_entry"`
	Telemetry         telemetry.Config `json:"telemetry"`
}

func Defaults() Config {
	return Config{
		BaseUrl:        "http://localhost:8080/api",
		PageSize:       8,
		TimeoutSeconds: 30,
		SessionDb:      ".bookstore/session.db",
		LoginEntry:     "bookstore-cli login",
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseUrl)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: unsupported scheme %q", u.Scheme)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	return nil
}

// Load reads the config file (if any) over Defaults and validates the result.
func Load() (Config, error) {
	cfg, err := configutil.Load(FileName, Defaults())
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return cfg, cfg.Validate()
}
