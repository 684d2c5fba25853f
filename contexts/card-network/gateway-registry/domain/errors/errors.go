package errors

import "errors"

var (
	ErrGatewayNotFound     = errors.New("gateway not found")
	ErrGatewayInactive     = errors.New("gateway is inactive")
	ErrInvalidGatewayInput = errors.New("invalid gateway input")
	ErrInvalidCardInput    = errors.New("invalid card input")
	ErrCheckerUnavailable  = errors.New("card checker unavailable")
)
