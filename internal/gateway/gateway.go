// Package gateway is the single chokepoint through which all backend HTTP
// calls are issued. It attaches the persisted bearer credential, speaks JSON
// in both directions, and normalizes every failure into RequestError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mkaleva/ornata/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// Caller is the request surface the stores depend on. *Client satisfies it;
// tests provide fakes.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body any, out any) error
}

// CredentialSource yields the currently persisted bearer credential, or the
// empty string when the client is anonymous.
type CredentialSource interface {
	BearerToken(ctx context.Context) (string, error)
}

// Client issues JSON requests against the backend API. It never retries and
// sets no explicit timeout; the transport defaults apply.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
	log        logging.Logger
}

var _ Caller = (*Client)(nil)

func NewClient(baseURL string, creds CredentialSource, log logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		creds:      creds,
		log:        log,
	}
}

// Call issues method against endpoint with body marshalled as JSON and, when
// out is non-nil, decodes the response into it. The endpoint is joined to
// the base URL. Non-2xx statuses fail with the backend's message field when
// present, a generic message otherwise.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return &RequestError{Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	token, err := c.creds.BearerToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential lookup failed, sending anonymous request", "error", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "Invalid server response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug(ctx, "request failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
		return &RequestError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &RequestError{Status: resp.StatusCode, Message: "Invalid server response"}
		}
	}

	return nil
}

// errorMessage extracts the backend's message field from a failure body,
// falling back to a generic message when the body carries none.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "Something went wrong"
}
