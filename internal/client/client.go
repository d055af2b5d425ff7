// Package client talks to the glossary HTTP API and applies the same
// validation and duplicate checks as the web front end before writing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/glossaryweb/glossary/internal/glossary"
)

const itemsPath = "/api/glossaryitems"

// APIError is a non-2xx response from the glossary API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("glossary API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("glossary API error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is a typed client for the glossary API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient creates a client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// List fetches every entry, sorted by term.
func (c *Client) List(ctx context.Context) ([]glossary.Entry, error) {
	var entries []glossary.Entry
	if _, err := c.do(ctx, http.MethodGet, itemsPath, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Get fetches one entry by id.
func (c *Client) Get(ctx context.Context, id int64) (glossary.Entry, error) {
	var entry glossary.Entry
	if _, err := c.do(ctx, http.MethodGet, itemPath(id), nil, &entry); err != nil {
		return glossary.Entry{}, fmt.Errorf("failed to get entry %d: %w", id, err)
	}
	return entry, nil
}

// Create posts a new entry and returns it with its Location header.
func (c *Client) Create(ctx context.Context, term, definition string) (glossary.Entry, string, error) {
	var entry glossary.Entry
	payload := glossary.Entry{Term: term, Definition: definition}
	res, err := c.do(ctx, http.MethodPost, itemsPath, payload, &entry)
	if err != nil {
		return glossary.Entry{}, "", fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, res.Header.Get("Location"), nil
}

// Replace puts the full entry at its id.
func (c *Client) Replace(ctx context.Context, entry glossary.Entry) error {
	if _, err := c.do(ctx, http.MethodPut, itemPath(entry.ID), entry, nil); err != nil {
		return fmt.Errorf("failed to update entry %d: %w", entry.ID, err)
	}
	return nil
}

// Delete removes the entry at id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if _, err := c.do(ctx, http.MethodDelete, itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", id, err)
	}
	return nil
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", itemsPath, id)
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res, decodeAPIError(res)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return res, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return res, nil
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
