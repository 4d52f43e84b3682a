// Package ratelimiter は外部APIへの呼び出し頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter は1分あたりの上限で呼び出しを間引きます。
// 上限までは即座に通し、それを超えると次のトークンが補充されるまで待機します。
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewPerMinute は perMinute 回/分の RateLimiter を生成します。perMinute < 1 は 1 として扱います。
func NewPerMinute(name string, perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

// Wait blocks until a call is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	start := time.Now()
	if err := rl.limiter.Wait(ctx); err != nil {
		return err
	}
	if waited := time.Since(start); waited > 100*time.Millisecond {
		slog.Info("rate limit reached, waited before calling", "limiter", rl.name, "waited", waited)
	}
	return nil
}
