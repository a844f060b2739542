package wallet

import "smartwallet/internal/models"

// EligibleForNewWallet reports whether a user on the given plan may unlock an
// additional wallet. PREMIUM allows up to 2 wallets, ULTIMATE up to 3;
// DEFAULT never qualifies.
func EligibleForNewWallet(subscriptionType string, walletCount int) bool {
	switch subscriptionType {
	case models.SubscriptionTypePremium:
		return walletCount < 2
	case models.SubscriptionTypeUltimate:
		return walletCount < 3
	default:
		return false
	}
}
