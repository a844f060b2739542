// Package notification wraps the remote notification-svc. Failures of
// fire-and-forget calls are logged and swallowed; they never abort the
// financial operation that triggered them. Only the explicit retry action
// surfaces a distinguished error to the caller.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"smartwallet/internal/events"

	"github.com/google/uuid"
)

// historyLimit caps how many recent emails the history view shows.
const historyLimit = 5

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	if client == nil {
		panic("notification client is required")
	}
	return &Service{client: client}
}

// UpsertPreference stores a user's notification preference, best-effort.
func (s *Service) UpsertPreference(ctx context.Context, userID uuid.UUID, enabled bool, contactInfo string) {
	req := UpsertPreferenceRequest{
		UserID:              userID,
		NotificationEnabled: enabled,
		ContactInfo:         contactInfo,
	}
	if err := s.client.UpsertPreference(ctx, req); err != nil {
		log.Printf("[S2S call] failed: %v", err)
	}
}

// GetPreference reads a user's notification preference.
func (s *Service) GetPreference(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	return s.client.GetPreference(ctx, userID)
}

// SendEmail delivers an email through notification-svc, best-effort.
func (s *Service) SendEmail(ctx context.Context, userID uuid.UUID, subject, body string) {
	req := EmailRequest{UserID: userID, Subject: subject, Body: body}
	if err := s.client.SendEmail(ctx, req); err != nil {
		log.Printf("[S2S call] failed: %v", err)
	}
}

// GetUserLastEmails returns up to the five most recent emails for a user.
func (s *Service) GetUserLastEmails(ctx context.Context, userID uuid.UUID) ([]Email, error) {
	emails, err := s.client.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(emails) > historyLimit {
		emails = emails[:historyLimit]
	}
	return emails, nil
}

// DeleteAllEmails clears a user's notification history, best-effort.
func (s *Service) DeleteAllEmails(ctx context.Context, userID uuid.UUID) {
	if err := s.client.DeleteAll(ctx, userID); err != nil {
		log.Printf("[S2S call] failed: %v", err)
	}
}

// RetryFailedEmails asks notification-svc to redeliver failed emails. Unlike
// the passive flows this one propagates: a forbidden response maps to
// ErrRetryLater, anything else to ErrServiceDown.
func (s *Service) RetryFailedEmails(ctx context.Context, userID uuid.UUID) error {
	err := s.client.RetryFailed(ctx, userID)
	if err == nil {
		return nil
	}
	log.Printf("[S2S call] failed: %v", err)

	var remote *RemoteError
	if errors.As(err, &remote) && remote.StatusCode == http.StatusForbidden {
		return ErrRetryLater
	}
	return ErrServiceDown
}

// NonFailedCount counts emails that were delivered successfully.
func NonFailedCount(emails []Email) int {
	count := 0
	for _, e := range emails {
		if e.Status == EmailStatusSucceeded {
			count++
		}
	}
	return count
}

// FailedCount counts emails whose delivery failed.
func FailedCount(emails []Email) int {
	count := 0
	for _, e := range emails {
		if e.Status == EmailStatusFailed {
			count++
		}
	}
	return count
}

// HandleSuccessfulCharge is subscribed to charge events and sends a payment
// confirmation email, best-effort.
func (s *Service) HandleSuccessfulCharge(event events.SuccessfulCharge) {
	body := fmt.Sprintf("A payment of %s %s was made from your wallet.",
		event.Amount.StringFixed(2), event.Currency)
	s.SendEmail(context.Background(), event.UserID, "New payment", body)
}
