// Package entity defines the values exchanged by the telegram feature.
package entity

// Status は送信結果の分類です。
type Status string

const (
	StatusSuccess       Status = "SUCCESS"
	StatusBadRequest    Status = "BAD_REQUEST"
	StatusNotConfigured Status = "NOT_CONFIGURED"
	StatusFailed        Status = "FAILED"
)

// Result is the outcome of one send. TelegramDescription carries the API's own
// description when Telegram answered with an error.
type Result struct {
	Status              Status
	OK                  bool
	Message             string
	TelegramDescription *string
	TelegramMessageID   int
}

// File はアップロードされたファイルです。
type File struct {
	Name        string
	ContentType string
	Bytes       []byte
	Caption     *string
}
