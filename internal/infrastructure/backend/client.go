package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/wifiattend/domain"
)

// RequestIDHeader is set on every outgoing request
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept for the error message
const maxErrorBody = 512

// StatusError is returned for any non-2xx response
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap maps 404 to domain.ErrRecordNotFound and everything else to domain.ErrBackend
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return domain.ErrRecordNotFound
	}
	return domain.ErrBackend
}

// Client talks to the REST record store
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	newID   func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger enables request logging
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a record store client for baseURL
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved base address
func (c *Client) BaseURL() string { return c.baseURL }

// List reads a collection, optionally filtered, into out (a pointer to a slice)
func (c *Client) List(ctx context.Context, collection string, query url.Values, out any) error {
	path := "/" + collection
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decodeList(body, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

// Create posts in to a collection and decodes the stored record into out (may be nil)
func (c *Client) Create(ctx context.Context, collection string, in, out any) error {
	path := "/" + collection
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", collection, err)
	}
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("POST %s: %w: %v", path, domain.ErrBackend, err)
	}
	return nil
}

// Delete removes one record by id
func (c *Client) Delete(ctx context.Context, collection string, id domain.RecordID) error {
	path := "/" + collection + "/" + url.PathEscape(id.String())
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("%s %s request_id=%s error=%v", method, path, reqID, err)
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrNetworkUnavailable, err)
	}
	c.logf("%s %s request_id=%s status=%d took=%s", method, path, reqID, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: text}
	}
	return body, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// decodeList accepts a bare JSON array or an object wrapping it under "value"
func decodeList(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return fmt.Errorf("%w: empty list response", domain.ErrBackend)
	}
	if bytes.Equal(body, []byte("null")) {
		return nil
	}
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrBackend, err)
		}
		return nil
	case '{':
		var envelope struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrBackend, err)
		}
		if len(envelope.Value) == 0 {
			return fmt.Errorf("%w: list envelope has no value", domain.ErrBackend)
		}
		return decodeList(envelope.Value, out)
	}
	return errors.Join(domain.ErrBackend, fmt.Errorf("unexpected list response %.32q", body))
}
