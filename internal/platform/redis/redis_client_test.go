package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// TestConfig は Redis設定の判定とアドレス組み立てを検証します。
func TestConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, Config{}.IsConfigured())
	assert.True(t, Config{Host: "cache"}.IsConfigured())
	assert.Equal(t, "cache:6380", Config{Host: "cache", Port: 6380}.Addr())
}

// TestPing は Ping の成功と失敗の伝播を検証します。
func TestPing(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	assert.NoError(t, Ping(context.Background(), client))
	assert.ErrorContains(t, Ping(context.Background(), client), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
