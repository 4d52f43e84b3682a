package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// UserAgent is sent on every outbound request.
const UserAgent = "stock-watchlist/1.0"

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConns: 最大アイドル接続数
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
//   - 送信ごとに User-Agent を付与し、ホスト・ステータス・所要時間を debug で記録する
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &loggingTransport{next: t}}
}

type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTripper はリクエストを書き換えてはいけないので複製する
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", UserAgent)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	if err != nil {
		slog.Warn("outbound request failed", "method", r.Method, "host", r.URL.Host, "latency", time.Since(start), "error", err)
		return nil, err
	}
	// URL のクエリやパスにはトークンが含まれ得るのでホストだけを記録する
	slog.Debug("outbound request", "method", r.Method, "host", r.URL.Host, "status", resp.StatusCode, "latency", time.Since(start))
	return resp, nil
}
