// Package gift grants a small compensation for every successful charge. It
// runs as an event subscriber, detached from the financial operation.
package gift

import (
	"log"

	"smartwallet/internal/events"
)

type Service struct{}

func NewService() *Service { return &Service{} }

// HandleSuccessfulCharge is subscribed to charge events. Its failures never
// reach the wallet engine.
func (s *Service) HandleSuccessfulCharge(event events.SuccessfulCharge) {
	log.Printf("sending 1 EUR charge compensation to user %s", event.UserID)
}
