package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the configured request pipeline for the storefront API: it owns
// the base URL, the bearer token attached to every request and the default
// JSON content type. All services share a single Client.
type Client struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetToken arms the pipeline with a bearer token. Called on login and on
// session restore.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token. Called on logout.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently held bearer token, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do issues a request against the API. The bearer token is attached when one
// is held; contentType is set verbatim when non-empty (multipart bodies carry
// their own boundary-bearing type).
func (c *Client) Do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.client.Do(req)
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
// Either in or out may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

// PatchJSON issues a PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPatch, path, in, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.Do(ctx, http.MethodDelete, path, "", nil)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// PostMultipart issues a POST with a multipart form body. Laravel-style
// method overrides (`?_method=PUT`) are expressed in the path by the caller.
func (c *Client) PostMultipart(ctx context.Context, path string, form *Form, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	resp, err := c.Do(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		// The API expects a JSON content type even on empty-bodied
		// mutations (increment/decrement).
		body = strings.NewReader("{}")
	}

	resp, err := c.Do(ctx, method, path, "application/json", body)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFrom(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
