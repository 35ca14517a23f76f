package schedule

import "errors"

var (
	ErrValidation = errors.New("invalid schedule window")
	ErrNotFound   = errors.New("resource not found")
)
