package wallet

import "github.com/shopspring/decimal"

// PlatformIdentifier is the well-known counterparty recorded for charges and
// top-ups that have no second wallet.
const PlatformIdentifier = "SMART WALLET PLATFORM"

// Business failure reasons, persisted verbatim on failed transactions.
const (
	InactiveWalletReason    = "Inactive wallet"
	InsufficientFundsReason = "Insufficient funds"
	ReceiverNotFoundReason  = "Receiver wallet was not found"
)

const (
	topUpDescriptionFormat    = "Top-up %.2f"
	transferDescriptionFormat = "Transfer %.2f from %s to %s"
)

// DefaultCurrency is the currency of newly provisioned wallets.
const DefaultCurrency = "EUR"

// InitialWalletBalance is the starting balance of the default wallet created
// at registration.
var InitialWalletBalance = decimal.RequireFromString("20.00")
