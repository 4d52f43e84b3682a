// Package entity defines the Kite Connect session values.
package entity

import "time"

// Token は保存済みのアクセストークンです。古い行は監査用に残し、最新の行だけを使います。
type Token struct {
	ID          int64
	AccessToken string
	CreatedAt   time.Time
}

// Session is what Kite returns when a request token is exchanged.
type Session struct {
	UserID      string
	UserName    string
	AccessToken string
}

// Status はトークンの有効状態です。
type Status struct {
	Authenticated bool
	IssuedAt      *time.Time
	ExpiresAt     time.Time
}
