package models

import "errors"

// Failure taxonomy shared by services and repositories. Controllers map these
// onto HTTP statuses; anything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
