// Command apitoken prints a signed API token for an operator or client.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"stock_watchlist/internal/app/config"
	jwtmw "stock_watchlist/internal/platform/jwt"
	"stock_watchlist/internal/platform/logger"
)

func main() {
	subject := flag.String("subject", "operator", "token subject (sub claim)")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: API_TOKEN_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup("apitoken", "text", cfg.App.LogLevel)

	if !cfg.Auth.Enabled() {
		slog.Error("API_JWT_SECRET is not set")
		os.Exit(1)
	}
	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := jwtmw.NewGenerator(cfg.Auth.Secret, lifetime).GenerateToken(*subject)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
