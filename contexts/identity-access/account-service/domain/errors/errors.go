package errors

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAccessKey    = errors.New("invalid access key")
	ErrDuplicateAccessKey  = errors.New("duplicate access key")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidLanguage     = errors.New("invalid language")
	ErrInvalidCost         = errors.New("invalid consume cost")
	ErrKeyGeneration       = errors.New("access key generation exhausted retries")
)
