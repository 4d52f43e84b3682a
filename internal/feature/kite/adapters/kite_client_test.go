package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"stock_watchlist/internal/feature/kite/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChecksum はセッション生成用チェックサムの計算を検証します。
func TestChecksum(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "08a03d928417ea4085557933d3b187ff2a3515b039d6054dbd230c95d978a17a", checksum("key", "token", "secret"))
	assert.Len(t, checksum("key", "token", "secret"), 64)
	assert.NotEqual(t, checksum("key", "token", "secret"), checksum("key", "token2", "secret"))
}

// TestLoginURL はログインURLのクエリ組み立てを検証します。
func TestLoginURL(t *testing.T) {
	t.Parallel()

	got := LoginURL("https://kite.zerodha.com/connect/login", "abc", "state=xyz")
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "3", u.Query().Get("v"))
	assert.Equal(t, "abc", u.Query().Get("api_key"))
	assert.Equal(t, "state=xyz", u.Query().Get("redirect_params"))

	plain := LoginURL("https://kite.zerodha.com/connect/login", "abc", "")
	assert.Equal(t, "https://kite.zerodha.com/connect/login?api_key=abc&v=3", plain)
}

// TestKiteClient_GenerateSession はセッション生成リクエストと応答の解釈を検証します。
func TestKiteClient_GenerateSession(t *testing.T) {
	t.Parallel()

	var form url.Values
	var version string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/session/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		version = r.Header.Get("X-Kite-Version")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"user_id":"AB1234","user_name":"Trader","access_token":"tok"}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewKiteClient(Config{APIKey: "key", APISecret: "secret", BaseURL: srv.URL + "/"}, srv.Client())
	session, err := c.GenerateSession(context.Background(), "req")
	require.NoError(t, err)

	assert.Equal(t, "AB1234", session.UserID)
	assert.Equal(t, "tok", session.AccessToken)
	assert.Equal(t, "3", version)
	assert.Equal(t, "key", form.Get("api_key"))
	assert.Equal(t, "req", form.Get("request_token"))
	assert.Equal(t, checksum("key", "req", "secret"), form.Get("checksum"))
}

// TestKiteClient_GenerateSession_Errors は Kite APIのエラー応答が APIError に変換されることを検証します。
func TestKiteClient_GenerateSession_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		expectType string
	}{
		{"token exception", http.StatusForbidden, `{"status":"error","message":"Token is invalid or has expired.","error_type":"TokenException"}`, "TokenException"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "InvalidResponse"},
		{"no access token", http.StatusOK, `{"status":"success","data":{}}`, "InvalidResponse"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c := NewKiteClient(Config{APIKey: "key", APISecret: "secret", BaseURL: srv.URL}, srv.Client())
			_, err := c.GenerateSession(context.Background(), "req")

			var apiErr *usecase.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectType, apiErr.ErrorType)
		})
	}
}

// TestConfig_IsConfigured は必須設定の有無による判定を検証します。
func TestConfig_IsConfigured(t *testing.T) {
	t.Parallel()
	assert.True(t, Config{APIKey: "k", APISecret: "s"}.IsConfigured())
	assert.False(t, Config{APIKey: "k"}.IsConfigured())
	assert.False(t, Config{APISecret: "s"}.IsConfigured())
}
