package service

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap these
// with context via fmt.Errorf("...: %w", ...).
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotOwner           = errors.New("not authorized")
	ErrUserLocked         = errors.New("user is locked")
)
