package config

import (
	"testing"
	"time"

	"stock_watchlist/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// t.Setenv を使うので並列実行しない

// TestLoad_Defaults は環境変数がないときの既定値を検証します。
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_DB_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "json", cfg.App.LogFormat)
	assert.Equal(t, db.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.DB.IsConfigured())
	assert.False(t, cfg.Redis.IsConfigured())
	assert.False(t, cfg.Telegram.IsConfigured())
	assert.Equal(t, 20, cfg.Telegram.RatePerMinute)
	assert.Equal(t, "https://api.kite.trade", cfg.Kite.BaseURL)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
}

// TestLoad_FromEnvironment は環境変数から各設定が読み込まれることを検証します。
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SUPABASE_DB_URL", "jdbc:postgresql://db.example:5432/postgres")
	t.Setenv("SUPABASE_DB_USER", "svc")
	t.Setenv("SUPABASE_DB_PASSWORD", "pw")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("KITE_API_KEY", "key")
	t.Setenv("KITE_API_SECRET", "secret")
	t.Setenv("RENDER_EXTERNAL_URL", "https://svc.onrender.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.DB.IsConfigured())
	assert.Equal(t, 4, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.Redis.IsConfigured())
	assert.True(t, cfg.Telegram.IsConfigured())
	assert.True(t, cfg.Kite.IsConfigured())
	assert.Equal(t, "https://svc.onrender.com/health", cfg.Deployment.WakeURL())
}

// TestLoad_InvalidValues は不正な値で読み込みが失敗することを検証します。
func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("PORT", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	_, err = Load()
	assert.Error(t, err)
}

// TestDeploymentConfig_WakeURL は外部URLから起動用URLを組み立てることを検証します。
func TestDeploymentConfig_WakeURL(t *testing.T) {
	assert.Equal(t, "", DeploymentConfig{}.WakeURL())
	assert.Equal(t, "https://x.example/health", DeploymentConfig{ExternalURL: " https://x.example "}.WakeURL())
}
