package db

import (
	"context"

	"gorm.io/gorm"
)

// Binder attaches capability implementations to a connection for one unit of work.
type Binder[R, W any] struct {
	Reader func(conn *gorm.DB) R
	Writer func(conn *gorm.DB) W
}

// Handler は Reader / Writer 能力インターフェースを単位作業ごとに接続へ束縛して実行します。
// 読み取りは Read、書き込みは Write、読み取り結果に依存する書き込みは Transaction を使います。
//
// Units of work must not call back into a Handler: they already hold a worker,
// and with a pool of size one that would deadlock.
type Handler[R, W any] struct {
	db   *Database
	name string
	bind Binder[R, W]
}

// NewHandler builds a typed view over database. Several handlers may share one Database.
func NewHandler[R, W any](database *Database, name string, bind Binder[R, W]) *Handler[R, W] {
	return &Handler[R, W]{db: database, name: name, bind: bind}
}

// fresh returns a session whose every chain starts from an empty statement
// while keeping the pinned connection or transaction and the context.
func fresh(conn *gorm.DB) *gorm.DB {
	return conn.Session(&gorm.Session{NewDB: true})
}

// Read pins one pooled connection and hands fn a Reader bound to it.
func (h *Handler[R, W]) Read(ctx context.Context, fn func(r R) error) error {
	return h.db.run(ctx, h.name, opRead, func(conn *gorm.DB) error {
		return conn.Connection(func(c *gorm.DB) error {
			return fn(h.bind.Reader(fresh(c)))
		})
	})
}

// Write pins one pooled connection and hands fn a Writer bound to it.
// Each statement commits on its own.
func (h *Handler[R, W]) Write(ctx context.Context, fn func(w W) error) error {
	return h.db.run(ctx, h.name, opWrite, func(conn *gorm.DB) error {
		return conn.Connection(func(c *gorm.DB) error {
			return fn(h.bind.Writer(fresh(c)))
		})
	})
}

// Transaction binds a Reader and a Writer to the same transaction. It commits
// when fn returns nil and rolls back on an error or panic.
func (h *Handler[R, W]) Transaction(ctx context.Context, fn func(r R, w W) error) error {
	return h.db.run(ctx, h.name, opTransaction, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			return fn(h.bind.Reader(fresh(tx)), h.bind.Writer(fresh(tx)))
		})
	})
}

func (h *Handler[R, W]) IsConfigured() bool {
	return h.db.IsConfigured()
}

func (h *Handler[R, W]) CheckConnection(ctx context.Context) bool {
	return h.db.CheckConnection(ctx)
}

func (h *Handler[R, W]) CheckTableAccess(ctx context.Context, table string) bool {
	return h.db.CheckTableAccess(ctx, table)
}

func (h *Handler[R, W]) TableAccess(ctx context.Context, table string) error {
	return h.db.TableAccess(ctx, table)
}
