// Package splitclient is the HTTP client for the splits REST API.
package splitclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Client communicates with the splits API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// SplitRequest is the body sent on create and update.
type SplitRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Name  string `json:"name"`
}

// ErrorResponse represents an error returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the acknowledgement returned on delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// APIError is returned for any response with status >= 400.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap maps well-known statuses onto domain errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrSplitNotFound
	case http.StatusConflict:
		return domain.ErrDuplicateSplit
	case http.StatusUnauthorized:
		return domain.ErrInvalidAPIKey
	}
	return nil
}

// NewClient creates a new splits API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns all splits in the order the server sends them.
func (c *Client) List(ctx context.Context) ([]domain.Split, error) {
	var splits []domain.Split
	if err := c.doRequest(ctx, http.MethodGet, "/api/splits", nil, &splits); err != nil {
		return nil, err
	}
	if splits == nil {
		splits = []domain.Split{}
	}
	return splits, nil
}

// Create sends the draft with its derived name and returns the stored split.
func (c *Client) Create(ctx context.Context, d domain.Draft) (domain.Split, error) {
	var created domain.Split
	if err := c.doRequest(ctx, http.MethodPost, "/api/splits", newSplitRequest(d), &created); err != nil {
		return domain.Split{}, err
	}
	if created.ID == "" {
		return domain.Split{}, fmt.Errorf("create split: response carries no id")
	}
	return created, nil
}

// Update replaces the fields of split id. The returned record always carries id.
func (c *Client) Update(ctx context.Context, id domain.SplitID, d domain.Draft) (domain.Split, error) {
	var updated domain.Split
	if err := c.doRequest(ctx, http.MethodPut, "/api/splits/"+url.PathEscape(id.String()), newSplitRequest(d), &updated); err != nil {
		return domain.Split{}, err
	}
	updated.ID = id
	return updated, nil
}

// Delete removes split id.
func (c *Client) Delete(ctx context.Context, id domain.SplitID) error {
	var ack MessageResponse
	return c.doRequest(ctx, http.MethodDelete, "/api/splits/"+url.PathEscape(id.String()), nil, &ack)
}

func newSplitRequest(d domain.Draft) *SplitRequest {
	return &SplitRequest{
		Label: d.Label,
		URL:   d.URL,
		Name:  d.Name(),
	}
}

// doRequest performs an HTTP request to the splits API.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
