package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means the Kite API key or secret is missing.
	ErrNotConfigured = errors.New("kite is not configured")
	// ErrStorageNotConfigured means the token table has no database behind it.
	ErrStorageNotConfigured = errors.New("kite token storage is not configured")
	// ErrMissingRequestToken は callback に request_token がないことを示します。
	ErrMissingRequestToken = errors.New("missing request_token parameter")
	// ErrInvalidState is returned when the login state is unknown, expired or already used.
	ErrInvalidState = errors.New("invalid or expired login state")
	// ErrLoginCancelled は Kite 側でログインが完了しなかったことを示します。
	ErrLoginCancelled = errors.New("kite login was not completed")
)

// APIError is an error answer from the Kite API.
type APIError struct {
	StatusCode int
	ErrorType  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kite api error %d (%s): %s", e.StatusCode, e.ErrorType, e.Message)
}
