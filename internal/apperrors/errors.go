package apperrors

import "errors"

// Sentinel errors used across services and repositories. Handlers map them
// to HTTP statuses with errors.Is; anything unmatched is treated as internal.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientStock = errors.New("insufficient stock")
)
