package notification

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryLater is returned when notification-svc refuses a retry
	// request; the user should try again later.
	ErrRetryLater = errors.New("failed to retry emails, try again later")
	// ErrServiceDown is returned when notification-svc cannot be reached or
	// errors for any other reason on an explicit retry.
	ErrServiceDown = errors.New("notification-svc is down")
)

// RemoteError is a non-2xx response from notification-svc.
type RemoteError struct {
	StatusCode int
	Endpoint   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("notification-svc %s returned status %d", e.Endpoint, e.StatusCode)
}
