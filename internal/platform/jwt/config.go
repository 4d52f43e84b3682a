package jwtmw

import (
	"strings"
	"time"
)

// Config は API 認証の設定です。Secret が空の場合 API は認証なしで公開されます。
type Config struct {
	Secret   string        `envconfig:"API_JWT_SECRET"`
	TokenTTL time.Duration `envconfig:"API_TOKEN_TTL" default:"720h"`
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Secret) != ""
}
