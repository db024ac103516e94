// Package api implements the HTTP client for the Patchstorage content API.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client talks to the Patchstorage API. The zero value is unusable; use
// NewClient.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	token      string
	debug      bool
	insecure   bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithDebug enables request/response logging to stderr.
func WithDebug(enabled bool) Option {
	return func(c *Client) { c.debug = enabled }
}

// WithInsecureSkipVerify disables TLS certificate verification. Meant for
// pushing against a local development instance.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) { c.insecure = insecure }
}

// NewClient creates an API client for the given base URL. A missing scheme
// defaults to https and trailing slashes are stripped.
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "patchbot/1.0",
	}

	base = strings.TrimSpace(base)
	if base != "" && !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")
	if u, err := url.Parse(base); err == nil {
		c.baseURL = u
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.insecure {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		c.httpClient.Transport = transport
	}

	return c
}

// BasePublicURL returns the normalized base URL, or empty when unset.
func (c *Client) BasePublicURL() string {
	if c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// SetToken sets the bearer token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Do performs a JSON request against the API. path is appended to the base
// URL and may carry a query string. When payload is non-nil it is sent as a
// JSON body; when v is non-nil the response body is decoded into it. Error
// responses are returned as *APIError.
func (c *Client) Do(ctx context.Context, method, path string, payload, v interface{}) (*http.Response, error) {
	if c.baseURL == nil {
		return nil, fmt.Errorf("api client has no base URL")
	}

	method = strings.ToUpper(strings.TrimSpace(method))

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.debugf("%s %s", method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.debugf("%s %s -> %s", method, req.URL, resp.Status)

	if resp.StatusCode >= 400 {
		return resp, parseAPIError(resp)
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp, fmt.Errorf("decode response from %s: %w", path, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}

	return resp, nil
}

// DoMultipart performs a multipart/form-data POST, streaming body with the
// given content type. Used for file uploads.
func (c *Client) DoMultipart(ctx context.Context, path, contentType string, body io.Reader, v interface{}) (*http.Response, error) {
	if c.baseURL == nil {
		return nil, fmt.Errorf("api client has no base URL")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	c.debugf("POST %s (multipart)", req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("upload to %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return resp, parseAPIError(resp)
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp, fmt.Errorf("decode response from %s: %w", path, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}

	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	full := c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.debug {
		fmt.Fprintf(os.Stderr, "[api] "+format+"\n", args...)
	}
}
