package booking

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("booking or resource not found")
	ErrForbidden     = errors.New("actor not allowed to perform this action")
	ErrConflict      = errors.New("requested range overlaps an active booking")
	ErrStateConflict = errors.New("action not permitted from current booking status")
)
