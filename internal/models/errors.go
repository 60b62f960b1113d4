package models

import "errors"

// Sentinel errors shared across services, repositories and handlers.
// Matched with errors.Is so wrapping with context is safe.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("not authorized")
	ErrValidation         = errors.New("invalid input")
	ErrDispatch           = errors.New("notification dispatch failed")
)
