// Package api is the HTTP client for the persons REST endpoint.
package api

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

	"go.uber.org/zap"

	"phonebook/internal/models"
)

const (
	personsPath = "/api/persons"

	// Upper bound on error bodies read from the server.
	maxErrorBody = 64 * 1024
)

// Client performs the four CRUD operations against a phonebook server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the server at baseURL, e.g. http://localhost:3001.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchAll lists every contact on the server.
func (c *Client) FetchAll(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.do(ctx, "fetch", http.MethodGet, personsPath, "", nil, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

// newPerson is the create body. It has no id: the server assigns one, and a
// POST carrying an id is read by the server as an update of that id.
type newPerson struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Create posts a new contact and returns the record the server stored.
// contact.ID stays local and is never sent.
func (c *Client) Create(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var created models.Contact
	in := newPerson{Name: contact.Name, Number: contact.Number}
	err := c.do(ctx, "create", http.MethodPost, personsPath, contact.ID, in, &created)
	return created, err
}

// Update replaces the contact with contact.ID and returns the stored record.
func (c *Client) Update(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var updated models.Contact
	err := c.do(ctx, "update", http.MethodPut, personPath(contact.ID), contact.ID, contact, &updated)
	return updated, err
}

// Delete removes the contact with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, personPath(id), id, nil, nil)
}

func personPath(id string) string {
	return personsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, path, id string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{ID: id}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{Status: resp.StatusCode, Message: errorMessage(resp)}
	case resp.StatusCode >= 300:
		return &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts the {"error": "..."} message from a rejected request,
// falling back to the status text.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return http.StatusText(resp.StatusCode)
}
