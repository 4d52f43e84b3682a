// Command reminder sends the daily Kite login reminder to Telegram.
// Without -schedule it runs once and exits; with it, it stays up and runs on the
// given cron spec in Asia/Kolkata time.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_watchlist/internal/app/config"
	"stock_watchlist/internal/app/di"
	kiteadapters "stock_watchlist/internal/feature/kite/adapters"
	kiteusecase "stock_watchlist/internal/feature/kite/usecase"
	"stock_watchlist/internal/feature/reminder"
	infrahttp "stock_watchlist/internal/platform/http"
	"stock_watchlist/internal/platform/logger"
	"stock_watchlist/internal/platform/scheduler"

	"golang.org/x/sync/errgroup"
)

func main() {
	schedule := flag.String("schedule", "", `cron spec, e.g. "5 6 * * MON-FRI" (empty: run once)`)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup("reminder", cfg.App.LogFormat, cfg.App.LogLevel)

	if !cfg.Kite.IsConfigured() {
		slog.Warn("KITE_API_KEY is not set; the login link will be incomplete")
	}

	sender := di.NewTelegramSender(cfg.Telegram)
	loginURL := kiteadapters.LoginURL(cfg.Kite.LoginBase, cfg.Kite.APIKey, "")
	job := reminder.NewJob(sender, infrahttp.NewHTTPClient(reminder.WakeTimeout), loginURL, cfg.Deployment.WakeURL())

	if *schedule == "" {
		if err := job.Run(); err != nil {
			slog.Error("reminder failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := scheduler.New(kiteusecase.Kolkata())
	if err := s.AddJob(*schedule, job); err != nil {
		slog.Error("failed to register reminder", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Start()
		<-gctx.Done()
		s.Stop()
		return nil
	})
	g.Go(func() error {
		// 次回実行時刻を起動時に一度だけ記録する
		select {
		case <-time.After(time.Second):
			for _, next := range s.Next() {
				slog.Info("next reminder", "at", next)
			}
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("reminder exited with error", "error", err)
		os.Exit(1)
	}
}
