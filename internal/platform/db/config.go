package db

import (
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config は DB 接続設定です。環境変数から envconfig で読み込まれます。
// 必須項目が空の場合、Open はエラーにせず「未設定」モードの Database を返します。
type Config struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	URL             string        `envconfig:"SUPABASE_DB_URL"`
	User            string        `envconfig:"SUPABASE_DB_USER"`
	Password        string        `envconfig:"SUPABASE_DB_PASSWORD"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

// IsConfigured reports whether every value the driver needs is present.
// SQLite only needs a path; Postgres needs URL, user and password.
func (c Config) IsConfigured() bool {
	if strings.TrimSpace(c.URL) == "" {
		return false
	}
	if c.driver() == DriverSQLite {
		return true
	}
	return strings.TrimSpace(c.User) != "" && strings.TrimSpace(c.Password) != ""
}

func (c Config) driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Driver))
	if d == "" {
		return DriverPostgres
	}
	return d
}

// poolSize is shared by the connection pool and the worker pool so that every
// worker can always obtain a connection.
func (c Config) poolSize() int {
	if c.driver() == DriverSQLite {
		return 1
	}
	if c.MaxOpenConns < 1 {
		return 10
	}
	return c.MaxOpenConns
}

// postgresURL accepts JDBC style URLs ("jdbc:postgresql://...") as well as plain
// libpq URLs and keyword/value DSNs.
func postgresURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimPrefix(u, "jdbc:")
	if strings.HasPrefix(u, "postgresql://") {
		u = "postgres://" + strings.TrimPrefix(u, "postgresql://")
	}
	return u
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per connection.
func sqliteDSN(raw string) string {
	dsn := strings.TrimSpace(raw)
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
