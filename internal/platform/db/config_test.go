package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConfig_IsConfigured は必須項目の有無で未設定モードが判定されることを検証します。
func TestConfig_IsConfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "postgres complete", cfg: Config{URL: "postgres://db:5432/app", User: "app", Password: "secret"}, want: true},
		{name: "postgres explicit driver", cfg: Config{Driver: "Postgres", URL: "postgres://db/app", User: "app", Password: "secret"}, want: true},
		{name: "blank url", cfg: Config{URL: "  ", User: "app", Password: "secret"}, want: false},
		{name: "blank user", cfg: Config{URL: "postgres://db/app", User: " ", Password: "secret"}, want: false},
		{name: "missing password", cfg: Config{URL: "postgres://db/app", User: "app"}, want: false},
		{name: "sqlite needs only a path", cfg: Config{Driver: DriverSQLite, URL: "watchlist.db"}, want: true},
		{name: "sqlite without path", cfg: Config{Driver: DriverSQLite}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.IsConfigured())
		})
	}
}

// TestPostgresURL は JDBC形式を含む接続URLの正規化を検証します。
func TestPostgresURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "jdbc:postgresql://db.example.com:5432/postgres?sslmode=require", want: "postgres://db.example.com:5432/postgres?sslmode=require"},
		{in: " postgresql://db/app ", want: "postgres://db/app"},
		{in: "postgres://db/app", want: "postgres://db/app"},
		{in: "host=db dbname=app", want: "host=db dbname=app"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, postgresURL(tt.in), tt.in)
	}
}

// TestSQLiteDSN は SQLite DSN に外部キー制約が有効化されることを検証します。
func TestSQLiteDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_foreign_keys=on", sqliteDSN("file:app.db?cache=shared"))
	assert.Equal(t, "app.db?_fk=1", sqliteDSN("app.db?_fk=1"))
}

// TestConfig_PoolSize はドライバごとのプールサイズの決定を検証します。
func TestConfig_PoolSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, Config{}.poolSize())
	assert.Equal(t, 4, Config{MaxOpenConns: 4}.poolSize())
	// SQLite は単一接続で直列化する
	assert.Equal(t, 1, Config{Driver: DriverSQLite, MaxOpenConns: 8}.poolSize())
}
