package notification

import (
	"time"

	"github.com/google/uuid"
)

// Email statuses as reported by notification-svc.
const (
	EmailStatusSucceeded = "SUCCEEDED"
	EmailStatusFailed    = "FAILED"
)

// UpsertPreferenceRequest creates or updates a user's notification preference.
type UpsertPreferenceRequest struct {
	UserID              uuid.UUID `json:"userId"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	ContactInfo         string    `json:"contactInfo"`
}

// Preference is a user's notification preference as held by notification-svc.
type Preference struct {
	UserID              uuid.UUID `json:"userId"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	ContactInfo         string    `json:"contactInfo"`
}

// EmailRequest asks notification-svc to deliver an email.
type EmailRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

// Email is one delivery attempt from the notification history.
type Email struct {
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedOn time.Time `json:"createdOn"`
}
