// Package adminauth consumes the hosted admin-verification endpoint.
// The service never verifies credentials itself; it forwards the bearer
// token and trusts the returned isAdmin flag.
package adminauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrUnauthorized is returned when the endpoint rejects the credential.
var ErrUnauthorized = errors.New("adminauth: unauthorized")

// Verification is the endpoint's answer for a credential.
type Verification struct {
	IsAdmin bool   `json:"isAdmin"`
	Role    string `json:"role,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Verifier checks a bearer credential. The interface exists so the admin
// middleware can be tested without the hosted endpoint.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Verification, error)
}

// Client calls the hosted verification endpoint.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient creates a verification client.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Verify posts the bearer token to the endpoint. A 401 maps to
// ErrUnauthorized; any other non-200 is a generic error.
func (c *Client) Verify(ctx context.Context, token string) (*Verification, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized:
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, body.Error)
		}
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("verify status %d", resp.StatusCode)
	}

	var v Verification
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("verify decode: %w", err)
	}
	return &v, nil
}
