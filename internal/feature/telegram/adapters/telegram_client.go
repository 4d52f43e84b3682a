// Package adapters は Telegram Bot API へのクライアントを提供します。
package adapters

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stock_watchlist/internal/feature/telegram/domain/entity"
	"stock_watchlist/internal/feature/telegram/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Config は Telegram ボットの接続設定です。
type Config struct {
	BotToken      string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID        string `envconfig:"TELEGRAM_CHAT_ID"`
	APIEndpoint   string `envconfig:"TELEGRAM_API_ENDPOINT"`
	RatePerMinute int    `envconfig:"TELEGRAM_RATE_PER_MINUTE" default:"20"`
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.BotToken) != "" && strings.TrimSpace(c.ChatID) != ""
}

// telegramClient は tgbotapi.BotAPI をラップし、設定されたチャットへ送信します。
type telegramClient struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	// channel is used instead of chatID for "@channel" style ids.
	channel string
}

var _ usecase.Client = (*telegramClient)(nil)

// NewTelegramClient builds a client without calling getMe, so construction never
// touches the network. Unconfigured settings yield a client that reports
// usecase.ErrNotConfigured.
func NewTelegramClient(cfg Config, httpClient *http.Client) *telegramClient {
	if !cfg.IsConfigured() {
		return &telegramClient{}
	}

	bot := &tgbotapi.BotAPI{
		Token:  strings.TrimSpace(cfg.BotToken),
		Client: httpClient,
		Buffer: 100,
	}
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot.SetAPIEndpoint(endpoint)

	c := &telegramClient{bot: bot}
	chat := strings.TrimSpace(cfg.ChatID)
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		c.chatID = id
	} else {
		c.channel = chat
	}
	return c
}

func (c *telegramClient) IsConfigured() bool {
	return c.bot != nil
}

func (c *telegramClient) SendText(ctx context.Context, text string) (int, error) {
	if !c.IsConfigured() {
		return 0, usecase.ErrNotConfigured
	}
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ChannelUsername = c.channel
	return c.send(ctx, msg)
}

func (c *telegramClient) SendPhoto(ctx context.Context, file entity.File) (int, error) {
	if !c.IsConfigured() {
		return 0, usecase.ErrNotConfigured
	}
	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileBytes{Name: file.Name, Bytes: file.Bytes})
	photo.ChannelUsername = c.channel
	if file.Caption != nil {
		photo.Caption = *file.Caption
	}
	return c.send(ctx, photo)
}

func (c *telegramClient) SendDocument(ctx context.Context, file entity.File) (int, error) {
	if !c.IsConfigured() {
		return 0, usecase.ErrNotConfigured
	}
	doc := tgbotapi.NewDocument(c.chatID, tgbotapi.FileBytes{Name: file.Name, Bytes: file.Bytes})
	doc.ChannelUsername = c.channel
	if file.Caption != nil {
		doc.Caption = *file.Caption
	}
	return c.send(ctx, doc)
}

// send は BotAPI.Send を別ゴルーチンで実行し、ctx のキャンセルで待機を打ち切ります。
// BotAPI はリクエストに context を渡せないため、打ち切り後のリクエストは http.Client のタイムアウトで終わります。
func (c *telegramClient) send(ctx context.Context, msg tgbotapi.Chattable) (int, error) {
	type result struct {
		msg tgbotapi.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		m, err := c.bot.Send(msg)
		done <- result{msg: m, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-done:
		if r.err != nil {
			var apiErr *tgbotapi.Error
			if errors.As(r.err, &apiErr) {
				return 0, &usecase.APIError{Code: apiErr.Code, Description: apiErr.Message}
			}
			return 0, r.err
		}
		return r.msg.MessageID, nil
	}
}
