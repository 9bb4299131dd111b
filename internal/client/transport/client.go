// Package transport implements the shared HTTP request wrapper used by all
// remote calls: per-request timeout, JSON (de)serialization, bearer-token
// injection, and translation of non-2xx responses into typed errors.
package transport

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

	"github.com/dverenev/priceadmin/internal/common"
	"github.com/dverenev/priceadmin/internal/logging"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	// DefaultTimeout bounds every request unless overridden per call.
	DefaultTimeout = 10 * time.Second
)

// TokenSource yields the current session token, or "" when logged out.
// The settings repository provides the durable implementation.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Envelope is the response wrapper every endpoint uses:
// { success, data?, message?, count?, error? }.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Count   int             `json:"count,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client is the transport layer. All methods honor ctx cancellation and the
// configured timeout; a timed-out request fails with KindTimeout.
type Client struct {
	baseURL string
	timeout time.Duration
	hc      *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// Options configures a Client. BaseURL is required.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Logger  logging.Logger
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

func New(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		tokens:  opts.Tokens,
		log:     opts.Logger,
		hc:      opts.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.hc == nil {
		c.hc = &http.Client{}
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c
}

// CallOptions are per-call overrides.
type CallOptions struct {
	Timeout time.Duration
	Query   url.Values
}

func (c *Client) Get(ctx context.Context, path string, out any, opts *CallOptions) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts *CallOptions) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts *CallOptions) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts *CallOptions) (*Envelope, error) {
	return c.do(ctx, http.MethodPatch, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts *CallOptions) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts *CallOptions) (*Envelope, error) {
	timeout := c.timeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if opts != nil && len(opts.Query) > 0 {
		reqURL += "?" + opts.Query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read auth token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Status: http.StatusRequestTimeout, Message: "Request timed out"}
		}
		// A caller-initiated abort is not a network failure.
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("request canceled: %w", ctx.Err())
		}
		return nil, &Error{Kind: KindNetwork, Message: "Network error"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "Failed to read response"}
	}

	var env Envelope
	if len(respBody) > 0 {
		// A malformed body on an error response is tolerated; the status
		// mapping still produces a usable message.
		_ = json.Unmarshal(respBody, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &Error{Kind: KindHTTP, Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to parse response data: %w", err)
		}
	}

	return &env, nil
}
