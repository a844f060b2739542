package subscription

import "errors"

// Service errors
var (
	// ErrNoActiveSubscription indicates a data-integrity violation: every
	// user must hold exactly one active subscription at all times.
	ErrNoActiveSubscription = errors.New("no active subscription found")
	// ErrPricingNotFound is returned for a plan/period pair outside the
	// pricing table. Unreachable through the public API.
	ErrPricingNotFound = errors.New("price not found for subscription type and period")
)
