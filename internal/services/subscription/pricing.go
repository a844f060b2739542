package subscription

import (
	"smartwallet/internal/models"

	"github.com/shopspring/decimal"
)

var (
	pricePremiumMonthly  = decimal.RequireFromString("19.99")
	pricePremiumYearly   = decimal.RequireFromString("199.99")
	priceUltimateMonthly = decimal.RequireFromString("49.99")
	priceUltimateYearly  = decimal.RequireFromString("499.99")
)

// UpgradePrice returns the fixed price for a plan type and billing period.
func UpgradePrice(subscriptionType, period string) (decimal.Decimal, error) {
	switch {
	case subscriptionType == models.SubscriptionTypeDefault:
		return decimal.Zero, nil
	case subscriptionType == models.SubscriptionTypePremium && period == models.SubscriptionPeriodMonthly:
		return pricePremiumMonthly, nil
	case subscriptionType == models.SubscriptionTypePremium && period == models.SubscriptionPeriodYearly:
		return pricePremiumYearly, nil
	case subscriptionType == models.SubscriptionTypeUltimate && period == models.SubscriptionPeriodMonthly:
		return priceUltimateMonthly, nil
	case subscriptionType == models.SubscriptionTypeUltimate && period == models.SubscriptionPeriodYearly:
		return priceUltimateYearly, nil
	}
	return decimal.Zero, ErrPricingNotFound
}
