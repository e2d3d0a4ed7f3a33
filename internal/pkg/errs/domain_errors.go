package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Lookup errors
	ErrBookNotFound     = errors.New("book not found")
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRewardNotFound   = errors.New("reward not found")

	// Exchange lifecycle errors
	ErrBookAlreadyInExchange = errors.New("book already has an active exchange")
	ErrInvalidState          = errors.New("operation not allowed in current state")
	ErrPaymentNotSettled     = errors.New("payment not settled")
	ErrConfirmationToken     = errors.New("confirmation token rejected")

	// Ledger errors
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrNegativeDelta      = errors.New("negative delta requires redemption reason")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
