package usecase

import (
	"context"
	"time"

	"stock_watchlist/internal/feature/kite/domain/entity"
	tgentity "stock_watchlist/internal/feature/telegram/domain/entity"
)

// TokenReader returns (nil, nil) when no token has been saved yet.
type TokenReader interface {
	GetLatestToken() (*entity.Token, error)
}

type TokenWriter interface {
	SaveToken(accessToken string) (*entity.Token, error)
}

// Database は kite_tokens 用の DB アクセスハンドラーです。
type Database interface {
	IsConfigured() bool
	Read(ctx context.Context, fn func(r TokenReader) error) error
	Write(ctx context.Context, fn func(w TokenWriter) error) error
}

// StateStore keeps one-time login states. Consume reports false for unknown or expired states.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

// Client は Kite Connect API のクライアントです。
type Client interface {
	IsConfigured() bool
	LoginURL(redirectParams string) string
	GenerateSession(ctx context.Context, requestToken string) (*entity.Session, error)
}

// Notifier sends best-effort notifications.
type Notifier interface {
	SendText(ctx context.Context, text string) tgentity.Result
}
