// Package usecase implements the Kite Connect login flow and token bookkeeping.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"stock_watchlist/internal/feature/kite/domain/entity"

	"github.com/google/uuid"
)

// StateTTL はログイン state の有効期間です。
const StateTTL = 10 * time.Minute

// KiteUsecase drives the daily login: it hands out the login URL, exchanges the
// request token on callback and reports whether today's token is still valid.
// states may be nil, in which case callbacks are accepted without a state check.
type KiteUsecase struct {
	db       Database
	client   Client
	states   StateStore
	notifier Notifier
	now      func() time.Time
}

type Option func(*KiteUsecase)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(u *KiteUsecase) { u.now = now }
}

func NewKiteUsecase(db Database, client Client, states StateStore, notifier Notifier, opts ...Option) *KiteUsecase {
	u := &KiteUsecase{db: db, client: client, states: states, notifier: notifier, now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// LoginURL returns the Kite login URL. When a state store is present a fresh
// state is saved and passed through Kite's redirect_params.
func (u *KiteUsecase) LoginURL(ctx context.Context) (string, error) {
	if !u.client.IsConfigured() {
		return "", ErrNotConfigured
	}
	if u.states == nil {
		return u.client.LoginURL(""), nil
	}

	state := uuid.NewString()
	if err := u.states.Save(ctx, state, StateTTL); err != nil {
		return "", fmt.Errorf("save login state: %w", err)
	}
	return u.client.LoginURL(url.Values{"state": {state}}.Encode()), nil
}

// HandleCallback exchanges requestToken for an access token and stores it.
// Kite reports status=success on a completed login; any other non-empty value is rejected.
func (u *KiteUsecase) HandleCallback(ctx context.Context, requestToken, state, status string) (*entity.Session, error) {
	if !u.client.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if !u.db.IsConfigured() {
		return nil, ErrStorageNotConfigured
	}
	requestToken = strings.TrimSpace(requestToken)
	if requestToken == "" {
		return nil, ErrMissingRequestToken
	}
	if status != "" && status != "success" {
		return nil, ErrLoginCancelled
	}

	if u.states != nil {
		if strings.TrimSpace(state) == "" {
			return nil, ErrInvalidState
		}
		ok, err := u.states.Consume(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("consume login state: %w", err)
		}
		if !ok {
			return nil, ErrInvalidState
		}
	}

	session, err := u.client.GenerateSession(ctx, requestToken)
	if err != nil {
		return nil, fmt.Errorf("generate session: %w", err)
	}

	if err := u.db.Write(ctx, func(w TokenWriter) error {
		_, err := w.SaveToken(session.AccessToken)
		return err
	}); err != nil {
		return nil, fmt.Errorf("save access token: %w", err)
	}
	slog.Info("kite access token refreshed", "user_id", session.UserID)

	// 通知の失敗でログイン自体は失敗させない
	res := u.notifier.SendText(ctx, fmt.Sprintf("Kite login successful. Token refreshed for user: %s", session.UserID))
	if !res.OK {
		slog.Warn("failed to notify kite login", "status", res.Status, "message", res.Message)
	}
	return session, nil
}

// Status reports whether the latest token was issued after the most recent 06:00 IST expiry.
func (u *KiteUsecase) Status(ctx context.Context) (entity.Status, error) {
	now := u.now()
	status := entity.Status{ExpiresAt: NextExpiry(now)}
	if !u.db.IsConfigured() {
		return status, ErrStorageNotConfigured
	}

	var token *entity.Token
	err := u.db.Read(ctx, func(r TokenReader) error {
		t, err := r.GetLatestToken()
		if err != nil {
			return err
		}
		token = t
		return nil
	})
	if err != nil {
		return status, fmt.Errorf("get latest token: %w", err)
	}
	if token == nil {
		return status, nil
	}

	issued := token.CreatedAt
	status.IssuedAt = &issued
	status.Authenticated = issued.After(LastExpiry(now))
	return status, nil
}

// IsAuthError reports errors caused by the caller rather than by Kite or storage.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingRequestToken) || errors.Is(err, ErrInvalidState) || errors.Is(err, ErrLoginCancelled)
}
