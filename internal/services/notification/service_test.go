package notification

import (
	"context"
	"testing"

	"smartwallet/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	history    []Email
	historyErr error
	retryErr   error
	sent       []EmailRequest
	sendErr    error
	deleted    []uuid.UUID
	upserted   []UpsertPreferenceRequest
}

func (f *fakeClient) UpsertPreference(ctx context.Context, req UpsertPreferenceRequest) error {
	f.upserted = append(f.upserted, req)
	return nil
}

func (f *fakeClient) GetPreference(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	return &Preference{UserID: userID}, nil
}

func (f *fakeClient) SendEmail(ctx context.Context, req EmailRequest) error {
	f.sent = append(f.sent, req)
	return f.sendErr
}

func (f *fakeClient) GetHistory(ctx context.Context, userID uuid.UUID) ([]Email, error) {
	return f.history, f.historyErr
}

func (f *fakeClient) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeClient) RetryFailed(ctx context.Context, userID uuid.UUID) error {
	return f.retryErr
}

func emailsWithStatus(statuses ...string) []Email {
	out := make([]Email, len(statuses))
	for i, s := range statuses {
		out[i] = Email{Subject: "subject", Status: s}
	}
	return out
}

func TestGetUserLastEmails(t *testing.T) {
	ctx := context.Background()

	t.Run("caps history at five", func(t *testing.T) {
		client := &fakeClient{history: emailsWithStatus(
			EmailStatusSucceeded, EmailStatusSucceeded, EmailStatusFailed,
			EmailStatusSucceeded, EmailStatusFailed, EmailStatusSucceeded,
			EmailStatusFailed,
		)}
		svc := NewService(client)

		emails, err := svc.GetUserLastEmails(ctx, uuid.New())
		require.NoError(t, err)
		assert.Len(t, emails, 5)
	})

	t.Run("short history is returned as-is", func(t *testing.T) {
		client := &fakeClient{history: emailsWithStatus(EmailStatusSucceeded, EmailStatusFailed)}
		svc := NewService(client)

		emails, err := svc.GetUserLastEmails(ctx, uuid.New())
		require.NoError(t, err)
		assert.Len(t, emails, 2)
	})
}

func TestEmailCounts(t *testing.T) {
	emails := emailsWithStatus(
		EmailStatusSucceeded, EmailStatusFailed, EmailStatusSucceeded, EmailStatusFailed, EmailStatusFailed,
	)
	assert.Equal(t, 2, NonFailedCount(emails))
	assert.Equal(t, 3, FailedCount(emails))
}

func TestRetryFailedEmails(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds when remote accepts", func(t *testing.T) {
		svc := NewService(&fakeClient{})
		assert.NoError(t, svc.RetryFailedEmails(ctx, uuid.New()))
	})

	t.Run("forbidden maps to retry-later", func(t *testing.T) {
		svc := NewService(&fakeClient{retryErr: &RemoteError{StatusCode: 403, Endpoint: "/notifications/retry"}})
		err := svc.RetryFailedEmails(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrRetryLater)
	})

	t.Run("any other failure means the service is down", func(t *testing.T) {
		svc := NewService(&fakeClient{retryErr: &RemoteError{StatusCode: 500, Endpoint: "/notifications/retry"}})
		err := svc.RetryFailedEmails(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrServiceDown)
	})

	t.Run("transport errors also mean the service is down", func(t *testing.T) {
		svc := NewService(&fakeClient{retryErr: context.DeadlineExceeded})
		err := svc.RetryFailedEmails(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrServiceDown)
	})
}

func TestSendEmailSwallowsFailures(t *testing.T) {
	client := &fakeClient{sendErr: &RemoteError{StatusCode: 502, Endpoint: "/notifications"}}
	svc := NewService(client)

	svc.SendEmail(context.Background(), uuid.New(), "subject", "body")
	require.Len(t, client.sent, 1)
}

func TestHandleSuccessfulCharge(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client)

	userID := uuid.New()
	svc.HandleSuccessfulCharge(events.SuccessfulCharge{
		UserID:   userID,
		Amount:   decimal.RequireFromString("19.99"),
		Currency: "EUR",
	})

	require.Len(t, client.sent, 1)
	assert.Equal(t, userID, client.sent[0].UserID)
	assert.Equal(t, "New payment", client.sent[0].Subject)
	assert.Contains(t, client.sent[0].Body, "19.99 EUR")
}
