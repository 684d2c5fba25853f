package errors

import "errors"

var (
	ErrInvalidNewsInput = errors.New("invalid news input")
)
