// Package dto はkiteフィーチャーのHTTPレスポンスを定義します。
package dto

import "time"

type LoginURLResponse struct {
	LoginURL string `json:"loginUrl"`
}

type CallbackResponse struct {
	Status string `json:"status"`
	UserID string `json:"userId"`
}

type StatusResponse struct {
	Authenticated bool       `json:"authenticated"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
