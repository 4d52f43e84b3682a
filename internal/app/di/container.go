// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"stock_watchlist/internal/app/config"
	"stock_watchlist/internal/app/router"
	kiteadapters "stock_watchlist/internal/feature/kite/adapters"
	kitehandler "stock_watchlist/internal/feature/kite/transport/handler"
	kiteusecase "stock_watchlist/internal/feature/kite/usecase"
	tgadapters "stock_watchlist/internal/feature/telegram/adapters"
	tghandler "stock_watchlist/internal/feature/telegram/transport/handler"
	tgusecase "stock_watchlist/internal/feature/telegram/usecase"
	wladapters "stock_watchlist/internal/feature/watchlist/adapters"
	wlhandler "stock_watchlist/internal/feature/watchlist/transport/handler"
	wlusecase "stock_watchlist/internal/feature/watchlist/usecase"
	"stock_watchlist/internal/platform/db"
	infrahttp "stock_watchlist/internal/platform/http"
	"stock_watchlist/internal/platform/http/handler"
	infraredis "stock_watchlist/internal/platform/redis"
	"stock_watchlist/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	outboundTimeout  = 30 * time.Second
	loginStatePrefix = "kite:login_state"
)

// Server はサーバープロセスが持つ依存一式です。
type Server struct {
	Router   *gin.Engine
	Database *db.Database
	Redis    *redis.Client
}

// Close releases the database and Redis connections.
func (s *Server) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	if err := s.Database.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

// Migrations lists the schema migrations of every feature.
var Migrations = []func(conn *gorm.DB) error{
	wladapters.Migrate,
	kiteadapters.Migrate,
}

// NewServer wires every feature. Missing settings degrade single features instead of failing.
func NewServer(ctx context.Context, cfg *config.Config) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	database := db.Open(cfg.DB, db.WithRegisterer(reg))
	rdb := NewRedis(ctx, cfg.Redis)

	sender := NewTelegramSender(cfg.Telegram)

	// Watchlist
	wlUC := wlusecase.NewWatchlistUsecase(wladapters.NewHandler(database), wladapters.TableNames)

	// Kite
	kiteClient := kiteadapters.NewKiteClient(cfg.Kite, infrahttp.NewHTTPClient(outboundTimeout))
	kiteUC := kiteusecase.NewKiteUsecase(kiteadapters.NewHandler(database), kiteClient, NewStateStore(rdb), sender)

	checks := map[string]handler.Check{"database": database.CheckConnection}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) bool { return infraredis.Ping(ctx, rdb) == nil }
	}

	r := router.NewRouter(router.Handlers{
		Watchlist: wlhandler.NewWatchlistHandler(wlUC),
		Telegram:  tghandler.NewTelegramHandler(sender),
		Kite:      kitehandler.NewKiteHandler(kiteUC),
	}, router.Options{
		JWTSecret:      cfg.Auth.Secret,
		AllowedOrigins: cfg.App.AllowedOrigins,
		ReadyChecks:    checks,
		Registry:       reg,
	})

	return &Server{Router: r, Database: database, Redis: rdb}
}

// NewRedis returns nil when Redis is not configured or unreachable.
func NewRedis(ctx context.Context, cfg infraredis.Config) *redis.Client {
	if !cfg.IsConfigured() {
		slog.Info("Redis is not configured; Kite login state check disabled")
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg, 5*time.Second)
	if err != nil {
		slog.Warn("Redis unavailable; Kite login state check disabled")
		return nil
	}
	return rdb
}

// NewStateStore creates a StateStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise it returns nil and callbacks are accepted without a state.
func NewStateStore(rdb *redis.Client) kiteusecase.StateStore {
	if rdb == nil {
		return nil
	}
	return kiteadapters.NewStateRedis(rdb, loginStatePrefix)
}

// NewTelegramSender creates a fully configured sender with HTTP client and rate limiter.
func NewTelegramSender(cfg tgadapters.Config) *tgusecase.SenderUsecase {
	client := tgadapters.NewTelegramClient(cfg, infrahttp.NewHTTPClient(outboundTimeout))
	limiter := ratelimiter.NewPerMinute("telegram", cfg.RatePerMinute)
	if !cfg.IsConfigured() {
		slog.Warn("Telegram is not configured; sends will report NOT_CONFIGURED")
	}
	return tgusecase.NewSenderUsecase(client, limiter)
}
