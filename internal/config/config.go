package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"kashbill/internal/domain/entities"
)

// Preference store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Locales             []string      `env:"PORTFOLIO_LOCALES" envDefault:"en,es" envSeparator:","`
	PreferenceBackend   string        `env:"PORTFOLIO_PREFERENCE_BACKEND" envDefault:"sqlite"`
	PreferencePath      string        `env:"PORTFOLIO_PREFERENCE_PATH"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	DatabaseMaxConns    int32         `env:"DATABASE_MAX_CONNS" envDefault:"2"`
	DatabasePingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT" envDefault:"5s"`
	TranslationsDir     string        `env:"PORTFOLIO_TRANSLATIONS_DIR"`
	ContentFile         string        `env:"PORTFOLIO_CONTENT_FILE"`
	ExitDuration        time.Duration `env:"PORTFOLIO_EXIT_DURATION" envDefault:"300ms"`
	EnterDuration       time.Duration `env:"PORTFOLIO_ENTER_DURATION" envDefault:"300ms"`
	TriggerDelay        time.Duration `env:"PORTFOLIO_TRIGGER_DELAY" envDefault:"150ms"`
	StartPath           string        `env:"PORTFOLIO_START_PATH" envDefault:"/"`
	LogLevel            string        `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	LogFile             string        `env:"PORTFOLIO_LOG_FILE"`
}

// Load reads .env (optional), parses the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (CI, shell profile...).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies every rule on the loaded configuration and fills derived
// defaults.
func (c *Config) validate() error {
	if len(c.Locales) == 0 {
		return fmt.Errorf("config: PORTFOLIO_LOCALES must list at least one locale")
	}
	seen := map[string]bool{}
	for i, raw := range c.Locales {
		l := strings.TrimSpace(raw)
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("config: PORTFOLIO_LOCALES: invalid locale %q: %w", raw, err)
		}
		if seen[l] {
			return fmt.Errorf("config: PORTFOLIO_LOCALES: duplicate locale %q", l)
		}
		seen[l] = true
		c.Locales[i] = l
	}

	switch c.PreferenceBackend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.PreferencePath) == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				dir = os.TempDir()
			}
			c.PreferencePath = filepath.Join(dir, "kashbill", "preferences.db")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required with the postgres backend")
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
		}
		if c.DatabaseMaxConns <= 0 {
			return fmt.Errorf("config: DATABASE_MAX_CONNS must be positive, got %d", c.DatabaseMaxConns)
		}
		if c.DatabasePingTimeout <= 0 {
			return fmt.Errorf("config: DATABASE_PING_TIMEOUT must be positive, got %s", c.DatabasePingTimeout)
		}
	default:
		return fmt.Errorf("config: PORTFOLIO_PREFERENCE_BACKEND %q unknown (memory, sqlite, postgres)", c.PreferenceBackend)
	}

	for name, d := range map[string]time.Duration{
		"PORTFOLIO_EXIT_DURATION":  c.ExitDuration,
		"PORTFOLIO_ENTER_DURATION": c.EnterDuration,
		"PORTFOLIO_TRIGGER_DELAY":  c.TriggerDelay,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", name, d)
		}
	}

	if !strings.HasPrefix(c.StartPath, "/") {
		return fmt.Errorf("config: PORTFOLIO_START_PATH must start with /")
	}

	return nil
}

// SupportedLocales converts the configured identifiers.
func (c *Config) SupportedLocales() []entities.Locale {
	out := make([]entities.Locale, len(c.Locales))
	for i, l := range c.Locales {
		out[i] = entities.Locale(l)
	}
	return out
}
