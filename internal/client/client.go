// Package client talks to the contacts HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contact-manager/internal/domains/contact/model"
	"contact-manager/internal/shared/response"
)

const contactsPath = "/api/contacts"

// APIError is a non-2xx answer from the server. Message is empty when the
// body carried none.
type APIError struct {
	Status  int
	Message string
	Fields  []response.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contacts api: status %d", e.Status)
	}
	return fmt.Sprintf("contacts api: status %d: %s", e.Status, e.Message)
}

// IsAPIError reports whether err is an *APIError and returns it
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the server rooted at baseURL
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	return &Client{
		baseURL:    u.String(),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// List fetches every contact, newest first
func (c *Client) List(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := c.do(ctx, http.MethodGet, contactsPath, nil, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

// Create submits a new contact and returns the stored record
func (c *Client) Create(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	var created model.Contact
	if err := c.do(ctx, http.MethodPost, contactsPath, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes the contact with id
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, contactsPath+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg response.Body
		if json.Unmarshal(raw, &msg) == nil {
			apiErr.Message = msg.Message
			apiErr.Fields = msg.Errors
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
