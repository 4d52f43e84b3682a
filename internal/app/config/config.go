// Package config loads the process configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"

	kiteadapters "stock_watchlist/internal/feature/kite/adapters"
	tgadapters "stock_watchlist/internal/feature/telegram/adapters"
	"stock_watchlist/internal/platform/db"
	jwtmw "stock_watchlist/internal/platform/jwt"
	"stock_watchlist/internal/platform/redis"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	DB         db.Config
	Redis      redis.Config
	Telegram   tgadapters.Config
	Kite       kiteadapters.Config
	Deployment DeploymentConfig
	Auth       jwtmw.Config
}

type AppConfig struct {
	Env            string   `envconfig:"APP_ENV" default:"development"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string   `envconfig:"LOG_FORMAT" default:"json"`
	Port           int      `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
	RunMigrations  bool     `envconfig:"RUN_MIGRATIONS" default:"false"`
}

// DeploymentConfig はホスティング先の情報です。リマインダーが wake-up ping に使います。
type DeploymentConfig struct {
	ExternalURL string `envconfig:"RENDER_EXTERNAL_URL"`
}

// WakeURL returns the health URL pinged to wake the service, or "" when unknown.
func (d DeploymentConfig) WakeURL() string {
	base := strings.TrimRight(strings.TrimSpace(d.ExternalURL), "/")
	if base == "" {
		return ""
	}
	return base + "/health"
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// Load reads .env if present, then the environment. Missing optional settings
// never fail loading; the affected component starts in not-configured mode.
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.App.Port < 1 || cfg.App.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.App.Port)
	}
	return &cfg, nil
}
