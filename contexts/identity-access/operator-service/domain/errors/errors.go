package errors

import "errors"

var (
	ErrNotOwner          = errors.New("requester is not an owner")
	ErrNotAdmin          = errors.New("requester is not an admin")
	ErrAlreadyAdmin      = errors.New("operator is already an admin")
	ErrOwnerImmutable    = errors.New("owners cannot be removed from the roster")
	ErrInvalidOperatorID = errors.New("invalid operator identifier")
	ErrRosterPersistence = errors.New("roster persistence failed")
)
