package db

import "errors"

var (
	// ErrNotConfigured は接続設定が不足しているときに全操作が返すエラーです。
	ErrNotConfigured = errors.New("database is not configured: set SUPABASE_DB_URL, SUPABASE_DB_USER and SUPABASE_DB_PASSWORD")
	// ErrClosed is returned for work submitted after Close.
	ErrClosed = errors.New("database handler is closed")
	// ErrPanic wraps a panic recovered from a unit of work.
	ErrPanic = errors.New("unit of work panicked")
	// ErrInvalidTableName is returned by TableAccess for names outside the identifier allow-list.
	ErrInvalidTableName = errors.New("invalid table name")
)
