package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client is the wire contract with the remote notification-svc. Every call
// may fail with a RemoteError or a transport error.
type Client interface {
	UpsertPreference(ctx context.Context, req UpsertPreferenceRequest) error
	GetPreference(ctx context.Context, userID uuid.UUID) (*Preference, error)
	SendEmail(ctx context.Context, req EmailRequest) error
	GetHistory(ctx context.Context, userID uuid.UUID) ([]Email, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) error
	RetryFailed(ctx context.Context, userID uuid.UUID) error
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for notification-svc rooted at baseURL,
// e.g. "http://localhost:8081/api/v1".
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) do(ctx context.Context, method, endpoint string, query url.Values, body interface{}, dest interface{}) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification-svc call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func userQuery(userID uuid.UUID) url.Values {
	q := url.Values{}
	q.Set("userId", userID.String())
	return q
}

func (c *httpClient) UpsertPreference(ctx context.Context, req UpsertPreferenceRequest) error {
	return c.do(ctx, http.MethodPost, "/preferences", nil, req, nil)
}

func (c *httpClient) GetPreference(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	var pref Preference
	if err := c.do(ctx, http.MethodGet, "/preferences", userQuery(userID), nil, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (c *httpClient) SendEmail(ctx context.Context, req EmailRequest) error {
	return c.do(ctx, http.MethodPost, "/notifications", nil, req, nil)
}

func (c *httpClient) GetHistory(ctx context.Context, userID uuid.UUID) ([]Email, error) {
	var emails []Email
	if err := c.do(ctx, http.MethodGet, "/notifications", userQuery(userID), nil, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func (c *httpClient) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/notifications", userQuery(userID), nil, nil)
}

func (c *httpClient) RetryFailed(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/notifications", userQuery(userID), nil, nil)
}
