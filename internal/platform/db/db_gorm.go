package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	opRead        = "read"
	opWrite       = "write"
	opTransaction = "transaction"
	opPing        = "ping"
	opTableAccess = "table_access"
	opMigrate     = "migrate"

	healthHandler = "health"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Option は Open の挙動を変更します。
type Option func(*options)

type options struct {
	registerer    prometheus.Registerer
	now           func() time.Time
	retryInterval time.Duration
	logLevel      logger.LogLevel
}

// WithRegisterer enables Prometheus metrics for every handler built on the Database.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithNowFunc overrides the clock used for created_at / updated_at assignments.
func WithNowFunc(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRetryInterval sets the polling interval used by WaitReady.
func WithRetryInterval(d time.Duration) Option {
	return func(o *options) { o.retryInterval = d }
}

// WithLogLevel sets gorm's SQL logger level (default: warn, slow queries and errors only).
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) { o.logLevel = level }
}

func defaultNow() time.Time {
	// Postgres の timestamptz はマイクロ秒精度なので書き込み前に揃える
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Database owns the process-wide connection pool and the worker pool that every
// Handler built on it dispatches to. Nothing outside a unit of work sees a raw connection.
type Database struct {
	cfg           Config
	gdb           *gorm.DB
	sqlDB         *sql.DB
	pool          *workerPool
	metrics       *metrics
	openErr       error
	retryInterval time.Duration
}

// Open validates cfg once and prepares the pool without dialing.
// It never fails: missing settings yield a not-configured Database and open
// errors are remembered and returned by every operation.
func Open(cfg Config, opts ...Option) *Database {
	o := options{
		now:           defaultNow,
		retryInterval: 3 * time.Second,
		logLevel:      logger.Warn,
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Database{
		cfg:           cfg,
		metrics:       newMetrics(o.registerer),
		retryInterval: o.retryInterval,
	}

	if !cfg.IsConfigured() {
		slog.Warn("database is not configured; data operations will fail fast", "driver", cfg.driver())
		return d
	}

	gdb, err := openGorm(cfg, &gorm.Config{
		DisableAutomaticPing: true,
		TranslateError:       true,
		NowFunc:              o.now,
		Logger:               logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.driver(), "error", err)
		d.openErr = fmt.Errorf("open database: %w", err)
		return d
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		slog.Error("failed to get sql.DB from gorm", "error", err)
		d.openErr = fmt.Errorf("open database: %w", err)
		return d
	}

	size := cfg.poolSize()
	sqlDB.SetMaxOpenConns(size)
	idle := cfg.MaxIdleConns
	if idle < 1 || idle > size {
		idle = size
	}
	sqlDB.SetMaxIdleConns(idle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	d.gdb = gdb
	d.sqlDB = sqlDB
	d.pool = newWorkerPool(size)

	slog.Info("database handler ready", "driver", cfg.driver(), "pool_size", size)
	return d
}

func openGorm(cfg Config, gcfg *gorm.Config) (*gorm.DB, error) {
	switch cfg.driver() {
	case DriverPostgres:
		connCfg, err := pgx.ParseConfig(postgresURL(cfg.URL))
		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}
		connCfg.User = cfg.User
		connCfg.Password = cfg.Password
		// stdlib.OpenDB does not dial; the first query does.
		return gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDB(*connCfg)}), gcfg)
	case DriverSQLite:
		return gorm.Open(sqlite.Open(sqliteDSN(cfg.URL)), gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// IsConfigured reports whether the connection settings were complete at Open.
func (d *Database) IsConfigured() bool {
	return d.cfg.IsConfigured()
}

func (d *Database) available() error {
	if d.openErr != nil {
		return d.openErr
	}
	if d.gdb == nil {
		return ErrNotConfigured
	}
	return nil
}

// run dispatches fn to the worker pool and waits for its result or ctx.
// On cancellation the caller returns immediately; the statement itself is
// cancelled through the context carried by conn.
func (d *Database) run(ctx context.Context, handler, op string, fn func(conn *gorm.DB) error) error {
	start := time.Now()
	if err := d.available(); err != nil {
		d.metrics.observe(handler, op, start, err)
		return err
	}
	if err := ctx.Err(); err != nil {
		d.metrics.observe(handler, op, start, err)
		return err
	}

	done := make(chan error, 1)
	job := func() {
		defer d.metrics.end(handler)
		done <- safely(func() error {
			return fn(d.gdb.WithContext(ctx))
		})
	}

	d.metrics.begin(handler)
	if err := d.pool.submit(ctx, job); err != nil {
		d.metrics.end(handler)
		d.metrics.observe(handler, op, start, err)
		return err
	}

	select {
	case err := <-done:
		d.metrics.observe(handler, op, start, err)
		return err
	case <-ctx.Done():
		d.metrics.observe(handler, op, start, ctx.Err())
		return ctx.Err()
	}
}

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}

// CheckConnection runs a trivial round trip. It never returns an error; any failure is false.
func (d *Database) CheckConnection(ctx context.Context) bool {
	err := d.run(ctx, healthHandler, opPing, func(conn *gorm.DB) error {
		var one int
		return conn.Raw("SELECT 1").Scan(&one).Error
	})
	if err != nil {
		slog.Debug("database connection check failed", "error", err)
		return false
	}
	return true
}

// TableAccess checks that table exists and is readable. The name is matched
// against an identifier allow-list before it is interpolated into SQL.
func (d *Database) TableAccess(ctx context.Context, table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM (SELECT 1 FROM "%s" LIMIT 1) AS sample`, table)
	return d.run(ctx, healthHandler, opTableAccess, func(conn *gorm.DB) error {
		var n int64
		return conn.Raw(query).Scan(&n).Error
	})
}

// CheckTableAccess is TableAccess reduced to a boolean for health probes.
func (d *Database) CheckTableAccess(ctx context.Context, table string) bool {
	if err := d.TableAccess(ctx, table); err != nil {
		if errors.Is(err, ErrInvalidTableName) {
			slog.Warn("rejected table name for access check", "table", table)
		}
		return false
	}
	return true
}

// Migrate runs fn with a pooled connection. Schema changes are the only work
// allowed to use the raw *gorm.DB, and they still go through the worker pool.
func (d *Database) Migrate(ctx context.Context, fn func(conn *gorm.DB) error) error {
	return d.run(ctx, "schema", opMigrate, fn)
}

// WaitReady polls CheckConnection until it succeeds, timeout elapses or ctx is done.
// 起動時の接続待ち用。失敗してもプロセスは止めない。
func (d *Database) WaitReady(ctx context.Context, timeout time.Duration) bool {
	if err := d.available(); err != nil {
		slog.Warn("skipping database readiness wait", "error", err)
		return false
	}

	deadline := time.Now().Add(timeout)
	for {
		if d.CheckConnection(ctx) {
			slog.Info("database connection established")
			return true
		}
		if time.Now().After(deadline) {
			slog.Error("database still unreachable", "waited", timeout)
			return false
		}
		slog.Warn("database unreachable, retrying", "retry_in", d.retryInterval)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(d.retryInterval):
		}
	}
}

// Close stops the worker pool and closes the connection pool.
func (d *Database) Close() error {
	if d.pool != nil {
		d.pool.close()
	}
	if d.sqlDB != nil {
		return d.sqlDB.Close()
	}
	return nil
}
