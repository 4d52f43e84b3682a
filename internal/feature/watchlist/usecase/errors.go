package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured はDB接続設定がないため機能が利用できないことを示します。
	ErrNotConfigured = errors.New("watchlist database is not configured")
	// ErrInvariantViolation marks a get-or-create whose read-back found nothing.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrAlreadyExists is returned by adapters for uniqueness violations.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError describes caller input that failed a normalization, range or format rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ServiceError wraps an unexpected failure with the action that was attempted.
type ServiceError struct {
	Action string
	Err    error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("watchlist service failed while '%s': %v", e.Action, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// fail passes validation and not-configured errors through unchanged and
// attaches the action to everything else.
func fail(action string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) || errors.Is(err, ErrNotConfigured) {
		return err
	}
	return &ServiceError{Action: action, Err: err}
}
