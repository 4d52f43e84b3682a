// Package usecase implements validation and dispatch of outbound Telegram messages.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"stock_watchlist/internal/feature/telegram/domain/entity"

	"github.com/dustin/go-humanize"
)

// MaxUploadBytes は Telegram Bot API のアップロード上限です。
const MaxUploadBytes = 50 * 1000 * 1000

const defaultFileName = "upload.bin"

// ErrNotConfigured is returned by clients that have no bot token or chat id.
var ErrNotConfigured = errors.New("telegram is not configured")

// APIError はTelegramがエラー応答を返したことを示します。
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

// Client sends to the configured chat and returns the Telegram message id.
type Client interface {
	IsConfigured() bool
	SendText(ctx context.Context, text string) (int, error)
	SendPhoto(ctx context.Context, file entity.File) (int, error)
	SendDocument(ctx context.Context, file entity.File) (int, error)
}

// Limiter throttles outbound calls.
type Limiter interface {
	Wait(ctx context.Context) error
}

// SenderUsecase validates requests and sends them through Client.
type SenderUsecase struct {
	client  Client
	limiter Limiter
}

func NewSenderUsecase(client Client, limiter Limiter) *SenderUsecase {
	return &SenderUsecase{client: client, limiter: limiter}
}

func (u *SenderUsecase) IsConfigured() bool {
	return u.client.IsConfigured()
}

// SendText は前後の空白を除いたテキストを送信します。
func (u *SenderUsecase) SendText(ctx context.Context, text string) entity.Result {
	if !u.client.IsConfigured() {
		return notConfigured()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return badRequest("Text message cannot be empty.")
	}
	return u.send(ctx, "Text sent to Telegram.", func() (int, error) {
		return u.client.SendText(ctx, text)
	})
}

func (u *SenderUsecase) SendImage(ctx context.Context, file entity.File) entity.Result {
	if !u.client.IsConfigured() {
		return notConfigured()
	}
	if !isImage(file) {
		return badRequest("Only image files are allowed for this endpoint.")
	}
	file, res, ok := prepareFile(file)
	if !ok {
		return res
	}
	return u.send(ctx, "Image sent to Telegram.", func() (int, error) {
		return u.client.SendPhoto(ctx, file)
	})
}

func (u *SenderUsecase) SendExcel(ctx context.Context, file entity.File) entity.Result {
	if !u.client.IsConfigured() {
		return notConfigured()
	}
	if !isSpreadsheet(file) {
		return badRequest("Only .xls or .xlsx files are allowed for this endpoint.")
	}
	file, res, ok := prepareFile(file)
	if !ok {
		return res
	}
	return u.send(ctx, "Excel file sent to Telegram.", func() (int, error) {
		return u.client.SendDocument(ctx, file)
	})
}

func (u *SenderUsecase) send(ctx context.Context, successMessage string, call func() (int, error)) entity.Result {
	if err := u.limiter.Wait(ctx); err != nil {
		return failed(err.Error())
	}
	id, err := call()
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return notConfigured()
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			slog.Warn("telegram rejected the request", "code", apiErr.Code, "description", apiErr.Description)
			return failed(apiErr.Description)
		}
		slog.Error("telegram request failed", "error", err)
		return failed(err.Error())
	}
	return entity.Result{Status: entity.StatusSuccess, OK: true, Message: successMessage, TelegramMessageID: id}
}

// prepareFile はファイル名とキャプションを整え、空ファイルとサイズ超過を弾きます。
func prepareFile(file entity.File) (entity.File, entity.Result, bool) {
	if len(file.Bytes) == 0 {
		return file, badRequest("Uploaded file is empty."), false
	}
	if len(file.Bytes) > MaxUploadBytes {
		msg := fmt.Sprintf("File is too large (%s). Telegram accepts uploads up to %s.",
			humanize.Bytes(uint64(len(file.Bytes))), humanize.Bytes(MaxUploadBytes))
		return file, badRequest(msg), false
	}
	file.Name = sanitizeFileName(file.Name)
	if file.Caption != nil {
		c := strings.TrimSpace(*file.Caption)
		if c == "" {
			file.Caption = nil
		} else {
			file.Caption = &c
		}
	}
	return file, entity.Result{}, true
}

func sanitizeFileName(name string) string {
	clean := strings.TrimSpace(strings.ReplaceAll(name, `"`, ""))
	if clean == "" {
		return defaultFileName
	}
	return clean
}

func isImage(file entity.File) bool {
	if strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return true
	}
	switch strings.ToLower(path.Ext(sanitizeFileName(file.Name))) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}

func isSpreadsheet(file entity.File) bool {
	switch strings.ToLower(path.Ext(sanitizeFileName(file.Name))) {
	case ".xls", ".xlsx":
		return true
	}
	switch strings.ToLower(file.ContentType) {
	case "application/vnd.ms-excel", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return true
	}
	return false
}

func notConfigured() entity.Result {
	return entity.Result{
		Status:  entity.StatusNotConfigured,
		Message: "Telegram is not configured. Set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.",
	}
}

func badRequest(message string) entity.Result {
	return entity.Result{Status: entity.StatusBadRequest, Message: message}
}

func failed(description string) entity.Result {
	return entity.Result{
		Status:              entity.StatusFailed,
		Message:             "Telegram API request failed.",
		TelegramDescription: &description,
	}
}
