package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The response formatter maps these to wire status lines.
var (
	ErrUserNotFound         = errors.New("user does not exist")
	ErrInsufficientBalance  = errors.New("not enough balance")
	ErrInsufficientHoldings = errors.New("not enough stock balance")
	ErrNegativeQuantity     = errors.New("holding quantity would go negative")
)

// ValidationError represents a command argument validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
