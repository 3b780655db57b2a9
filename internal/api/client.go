package api

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
)

// TokenSource supplies the bearer token for outgoing requests. The client
// reads it fresh on every call and never caches the value, so a Save or
// Clear on the backing store is visible to the next request immediately.
type TokenSource interface {
	// Token returns the current bearer token, or "" when no session is
	// active. An empty token simply produces an unauthenticated request.
	Token() string

	// Clear tears down the session. Invoked by the client when the backend
	// answers HTTP 401.
	Clear() error
}

// Client talks to the CareerLog backend API.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	userAgent      string
	tokens         TokenSource
	onUnauthorized func()
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "careerlog/0.1"
	requestTimeout   = 10 * time.Second
)

// Options configure a Client. Zero values fall back to defaults; a nil
// Tokens source means every request goes out unauthenticated.
type Options struct {
	// Tokens supplies and tears down the bearer token.
	Tokens TokenSource

	// OnUnauthorized runs after the token source has been cleared in
	// response to an HTTP 401. The composition root uses it to steer the
	// UI back to the login view; the client itself never touches the UI.
	OnUnauthorized func()

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	UserAgent string
}

// New builds a Client for the given base URL ("host:port" or a full URL).
func New(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:        base,
		http:           httpClient,
		userAgent:      userAgent,
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

// token resolves the current bearer token without blocking or refreshing.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do performs one round trip against the API and decodes the envelope.
//
// body may be nil (no request body), a *Form (passed through untouched with
// the form's own multipart content type), or any JSON-encodable value.
// On success the envelope's data is decoded into out (nil out discards it).
// Application-level failures return *Error; transport failures return the
// underlying error wrapped.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, out)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, out any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *Form:
		// Prebuilt multipart container: pass through unmodified. The
		// boundary content type comes from the form itself, never from us.
		reader = b.Reader()
		contentType = b.ContentType()
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// The envelope is authoritative; the HTTP status is informational,
	// except for 401 which additionally tears the session down.
	env, err := normalizeEnvelope(raw)
	if err != nil {
		return &Error{
			Code:    CodeInvalidResponse,
			Message: "invalid server response",
			Status:  resp.StatusCode,
		}
	}

	if !env.Success {
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized()
		}
		if env.Error != nil {
			return &Error{
				Code:    env.Error.Code,
				Message: env.Error.Message,
				Status:  resp.StatusCode,
			}
		}
		return &Error{
			Code:    CodeUnknownError,
			Message: "unknown API error",
			Status:  resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{
			Code:    CodeInvalidResponse,
			Message: "invalid server response",
			Status:  resp.StatusCode,
		}
	}
	return nil
}

func (c *Client) handleUnauthorized() {
	if c.tokens != nil {
		_ = c.tokens.Clear()
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
