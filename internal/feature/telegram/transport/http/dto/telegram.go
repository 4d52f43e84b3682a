// Package dto はtelegramフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

type SendTextReq struct {
	Message string `json:"message"`
}

// ActionResponse は送信系エンドポイントの共通レスポンスです。
type ActionResponse struct {
	OK                  bool    `json:"ok"`
	Message             string  `json:"message"`
	TelegramDescription *string `json:"telegram_description,omitempty"`
	TelegramMessageID   int     `json:"telegram_message_id,omitempty"`
}

type StatusResponse struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
}
