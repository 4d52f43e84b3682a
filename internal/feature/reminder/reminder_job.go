// Package reminder sends the daily Kite login reminder and wakes the hosted service.
package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgentity "stock_watchlist/internal/feature/telegram/domain/entity"
)

const (
	// デプロイ先のコールドスタートは 60 秒ほどかかることがある
	WakeTimeout = 90 * time.Second
	sendTimeout = 30 * time.Second
)

// Sender はテキストを Telegram に送ります。
type Sender interface {
	SendText(ctx context.Context, text string) tgentity.Result
}

// Job implements scheduler.Job.
type Job struct {
	sender   Sender
	http     *http.Client
	loginURL string
	wakeURL  string
}

// NewJob creates the reminder. wakeURL may be empty, in which case no ping is sent.
func NewJob(sender Sender, httpClient *http.Client, loginURL, wakeURL string) *Job {
	return &Job{sender: sender, http: httpClient, loginURL: loginURL, wakeURL: wakeURL}
}

func (j *Job) Name() string { return "kite-login-reminder" }

// Message returns the reminder text. Telegram auto-links bare URLs.
func (j *Job) Message() string {
	var b strings.Builder
	b.WriteString("Good morning! Kite authentication required for today.\n\n")
	fmt.Fprintf(&b, "Login: %s", j.loginURL)
	if j.wakeURL != "" {
		fmt.Fprintf(&b, "\n\nWake server anytime: %s", j.wakeURL)
	}
	return b.String()
}

// Run sends the reminder, then wakes the service. A failed wake-up is only logged.
func (j *Job) Run() error {
	return j.RunContext(context.Background())
}

func (j *Job) RunContext(ctx context.Context) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	res := j.sender.SendText(sendCtx, j.Message())
	cancel()

	var sendErr error
	if res.OK {
		slog.Info("telegram reminder sent", "message_id", res.TelegramMessageID)
	} else {
		sendErr = fmt.Errorf("send reminder: %s: %s", res.Status, res.Message)
	}

	if j.wakeURL != "" {
		if status, err := j.wake(ctx); err != nil {
			slog.Warn("wake-up ping failed", "url", j.wakeURL, "error", err)
		} else {
			slog.Info("wake-up ping sent", "status", status)
		}
	}
	return sendErr
}

func (j *Job) wake(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, WakeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.wakeURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := j.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
