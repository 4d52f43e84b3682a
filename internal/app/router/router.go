// Package router は gin エンジンとルーティングを組み立てます。
package router

import (
	"log/slog"
	"time"

	kitehandler "stock_watchlist/internal/feature/kite/transport/handler"
	tghandler "stock_watchlist/internal/feature/telegram/transport/handler"
	wlhandler "stock_watchlist/internal/feature/watchlist/transport/handler"
	"stock_watchlist/internal/platform/http/handler"
	"stock_watchlist/internal/platform/http/middleware"
	jwtmw "stock_watchlist/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Watchlist *wlhandler.WatchlistHandler
	Telegram  *tghandler.TelegramHandler
	Kite      *kitehandler.KiteHandler
}

type Options struct {
	// JWTSecret が空なら /api は認証なし
	JWTSecret      string
	AllowedOrigins []string
	ReadyChecks    map[string]handler.Check
	Registry       *prometheus.Registry
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	if opts.Registry != nil {
		r.Use(middleware.Metrics(opts.Registry))
	}
	r.Use(corsMiddleware(opts.AllowedOrigins))

	// 認証不要
	// 導通確認用 (wake-up ping もここ)
	r.GET("/health", handler.Health)
	r.HEAD("/health", handler.Health)
	r.GET("/ready", handler.Ready(opts.ReadyChecks, 5*time.Second))
	if opts.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	// Kite のリダイレクト先はブラウザから直接呼ばれる
	h.Kite.Register(&r.RouterGroup)

	// API
	api := r.Group("/api")
	if opts.JWTSecret != "" {
		api.Use(jwtmw.AuthRequired(opts.JWTSecret))
	} else {
		slog.Warn("API_JWT_SECRET is not set; /api is served without authentication")
	}
	h.Watchlist.Register(api)
	h.Telegram.Register(api)

	return r
}

// corsMiddleware は許可オリジンが未設定なら全オリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
