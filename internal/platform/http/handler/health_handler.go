// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Health はサービスヘルスチェック用の /health エンドポイントを処理します。
// リマインダーの wake-up ping もここに届くため、依存先には触れません。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Check reports whether one dependency is usable. It must not fail.
type Check func(ctx context.Context) bool

// Ready runs every check with a shared timeout and answers 503 when any fails.
func Ready(checks map[string]Check, timeout time.Duration) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]bool, len(names))
		for _, name := range names {
			ok := checks[name](ctx)
			results[name] = ok
			if !ok {
				status = http.StatusServiceUnavailable
			}
		}

		label := "ok"
		if status != http.StatusOK {
			label = "degraded"
		}
		c.JSON(status, gin.H{"status": label, "checks": results})
	}
}
