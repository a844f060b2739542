package wallet

import "errors"

// Service errors
var (
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrNotEligible    = errors.New("not eligible to unlock a new wallet")
	ErrNotWalletOwner = errors.New("wallet is not owned by this user")
)
