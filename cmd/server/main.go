package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_watchlist/internal/app/config"
	"stock_watchlist/internal/app/di"
	"stock_watchlist/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	readyTimeout    = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup("server", cfg.App.LogFormat, cfg.App.LogLevel)
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := di.NewServer(ctx, cfg)
	defer srv.Close()

	// DB が未設定でもサーバーは起動する（各エンドポイントが 503 を返す）
	if srv.Database.IsConfigured() {
		if !srv.Database.WaitReady(ctx, readyTimeout) {
			slog.Warn("database not reachable yet; continuing", "timeout", readyTimeout)
		} else if cfg.App.RunMigrations {
			for _, m := range di.Migrations {
				if err := srv.Database.Migrate(ctx, m); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}
			slog.Info("migrations applied")
		}
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", httpServer.Addr, "env", cfg.App.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
