package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevel はログレベル文字列の解釈を検証します。
func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

// TestNew はフォーマットとレベルに応じたハンドラの出力を検証します。
func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "json", "warn").Info("dropped")
	assert.Empty(t, buf.String())

	New(&buf, "json", "info").Info("kept", "stock_id", 7)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.EqualValues(t, 7, line["stock_id"])

	buf.Reset()
	New(&buf, "TEXT", "info").Info("plain")
	assert.True(t, strings.Contains(buf.String(), "msg=plain"))
}
