package adapters

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"stock_watchlist/internal/feature/telegram/domain/entity"
	"stock_watchlist/internal/feature/telegram/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTelegram は Bot API を模した httptest サーバーです。受け取ったリクエストを記録します。
type fakeTelegram struct {
	mu       sync.Mutex
	paths    []string
	bodies   []string
	status   int
	response string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.response)
}

func (f *fakeTelegram) requests() (paths, bodies []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...), append([]string(nil), f.bodies...)
}

func newFakeTelegram(t *testing.T, status int, response string) (*fakeTelegram, *httptest.Server) {
	t.Helper()
	fake := &fakeTelegram{status: status, response: response}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, srv
}

const okResponse = `{"ok":true,"result":{"message_id":42,"date":0,"chat":{"id":1001,"type":"private"}}}`

func newTestClient(srv *httptest.Server, chatID string) *telegramClient {
	return NewTelegramClient(Config{
		BotToken:    "123:abc",
		ChatID:      chatID,
		APIEndpoint: srv.URL + "/bot%s/%s",
	}, &http.Client{Timeout: 5 * time.Second})
}

// TestTelegramClient_SendText はテキスト送信のリクエスト内容を検証します。
func TestTelegramClient_SendText(t *testing.T) {
	t.Parallel()

	fake, srv := newFakeTelegram(t, http.StatusOK, okResponse)
	client := newTestClient(srv, "1001")

	id, err := client.SendText(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, 42, id)
	paths, bodies := fake.requests()
	require.Len(t, paths, 1)
	assert.Equal(t, "/bot123:abc/sendMessage", paths[0])
	assert.Contains(t, bodies[0], "chat_id=1001")
	assert.Contains(t, bodies[0], "text=hello")
}

// TestTelegramClient_ChannelUsername は @チャンネル名での送信を検証します。
func TestTelegramClient_ChannelUsername(t *testing.T) {
	t.Parallel()

	fake, srv := newFakeTelegram(t, http.StatusOK, okResponse)
	client := newTestClient(srv, "@alerts")

	_, err := client.SendText(context.Background(), "hi")

	require.NoError(t, err)
	_, bodies := fake.requests()
	require.Len(t, bodies, 1)
	assert.Contains(t, bodies[0], "chat_id=%40alerts")
}

// TestTelegramClient_SendDocument_Multipart はドキュメントが multipart で送られることを検証します。
func TestTelegramClient_SendDocument_Multipart(t *testing.T) {
	t.Parallel()

	fake, srv := newFakeTelegram(t, http.StatusOK, okResponse)
	client := newTestClient(srv, "1001")
	caption := "weekly"

	id, err := client.SendDocument(context.Background(), entity.File{
		Name:    "report.xlsx",
		Bytes:   []byte("PK\x03\x04"),
		Caption: &caption,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, id)
	paths, bodies := fake.requests()
	require.Len(t, paths, 1)
	assert.Equal(t, "/bot123:abc/sendDocument", paths[0])
	assert.Contains(t, bodies[0], `filename="report.xlsx"`)
	assert.Contains(t, bodies[0], "weekly")
}

// TestTelegramClient_APIError は Telegram APIのエラーが説明付きで返ることを検証します。
func TestTelegramClient_APIError(t *testing.T) {
	t.Parallel()

	_, srv := newFakeTelegram(t, http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	client := newTestClient(srv, "1001")

	_, err := client.SendText(context.Background(), "hello")

	var apiErr *usecase.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "Bad Request: chat not found", apiErr.Description)
}

// TestTelegramClient_NotConfigured は設定がないとき送信しないことを検証します。
func TestTelegramClient_NotConfigured(t *testing.T) {
	t.Parallel()

	client := NewTelegramClient(Config{BotToken: "  ", ChatID: "1"}, http.DefaultClient)

	assert.False(t, client.IsConfigured())
	_, err := client.SendText(context.Background(), "hello")
	assert.ErrorIs(t, err, usecase.ErrNotConfigured)
}

// TestTelegramClient_ContextCancelled はコンテキスト終了で送信を中断することを検証します。
func TestTelegramClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = io.WriteString(w, okResponse)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := newTestClient(srv, "1001")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.SendText(ctx, "slow")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestConfig_IsConfigured は必須設定の有無による判定を検証します。
func TestConfig_IsConfigured(t *testing.T) {
	t.Parallel()

	assert.True(t, Config{BotToken: "t", ChatID: "1"}.IsConfigured())
	assert.False(t, Config{BotToken: "t"}.IsConfigured())
	assert.False(t, Config{ChatID: strings.Repeat(" ", 3), BotToken: "t"}.IsConfigured())
}
