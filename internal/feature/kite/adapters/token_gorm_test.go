package adapters

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stock_watchlist/internal/feature/kite/usecase"
	"stock_watchlist/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTokenHandler(t *testing.T, now func() time.Time) *db.Handler[usecase.TokenReader, usecase.TokenWriter] {
	t.Helper()

	database := db.Open(db.Config{Driver: db.DriverSQLite, URL: filepath.Join(t.TempDir(), "kite.db")}, db.WithNowFunc(now))
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(context.Background(), Migrate))
	return NewHandler(database)
}

// TestTokenGorm_LatestToken は最新のトークンが取得されることを検証します。
func TestTokenGorm_LatestToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	tick := 0
	h := setupTokenHandler(t, func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	// 空のテーブルでは nil
	require.NoError(t, h.Read(ctx, func(r usecase.TokenReader) error {
		tok, err := r.GetLatestToken()
		require.NoError(t, err)
		assert.Nil(t, tok)
		return nil
	}))

	for _, token := range []string{"first", "second"} {
		require.NoError(t, h.Write(ctx, func(w usecase.TokenWriter) error {
			saved, err := w.SaveToken(token)
			require.NoError(t, err)
			assert.NotZero(t, saved.ID)
			return nil
		}))
	}

	require.NoError(t, h.Read(ctx, func(r usecase.TokenReader) error {
		tok, err := r.GetLatestToken()
		require.NoError(t, err)
		require.NotNil(t, tok)
		assert.Equal(t, "second", tok.AccessToken)
		return nil
	}))
}

// TestTokenGorm_SameTimestampPrefersNewestRow は同時刻のトークンでは新しい行が優先されることを検証します。
func TestTokenGorm_SameTimestampPrefersNewestRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fixed := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	h := setupTokenHandler(t, func() time.Time { return fixed })

	require.NoError(t, h.Write(ctx, func(w usecase.TokenWriter) error {
		if _, err := w.SaveToken("older"); err != nil {
			return err
		}
		_, err := w.SaveToken("newer")
		return err
	}))

	require.NoError(t, h.Read(ctx, func(r usecase.TokenReader) error {
		tok, err := r.GetLatestToken()
		require.NoError(t, err)
		require.NotNil(t, tok)
		assert.Equal(t, "newer", tok.AccessToken)
		assert.True(t, fixed.Equal(tok.CreatedAt))
		return nil
	}))
}
