// Package sources loads raw identifier pairs for mapping table
// construction from remote services (UniProt REST, the UniProt
// ID-mapping job service, BioMart, the Protein Ontology) and local
// files, and persists built tables as on-disk snapshots.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

const (
	// DefaultMaxRetries is the default number of retry attempts for
	// failed requests.
	DefaultMaxRetries = 3
	// DefaultUserAgent identifies the client to remote services.
	DefaultUserAgent = "BioMap-Go-Client/1.0"
)

// Client is a retrying HTTP fetcher shared by all remote backends.
type Client struct {
	HTTPClient *http.Client
	MaxRetries int
	APIKey     string
	UserAgent  string
	Debug      bool
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) {
		c.MaxRetries = retries
	}
}

// WithAPIKey sets an API key sent as the Authorization header, for
// mirrors that require one.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.APIKey = key
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.UserAgent = ua
	}
}

// WithDebug enables debug output.
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.Debug = debug
	}
}

// NewClient creates a new fetch client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
		MaxRetries: DefaultMaxRetries,
		UserAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a URL and returns a charset-normalized body reader. The
// caller must close it.
func (c *Client) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	return c.do(ctx, http.MethodGet, url, "", "")
}

// PostForm posts a form-encoded body and returns a charset-normalized
// body reader. The caller must close it.
func (c *Client) PostForm(ctx context.Context, url, body string) (io.ReadCloser, error) {
	return c.do(ctx, http.MethodPost, url, "application/x-www-form-urlencoded", body)
}

// do executes a request with retry logic: transport errors and 5xx
// responses are retried with exponential backoff, 4xx responses fail
// immediately.
func (c *Client) do(ctx context.Context, method, url, contentType, body string) (io.ReadCloser, error) {
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		var reqBody io.Reader
		if body != "" {
			reqBody = strings.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", c.UserAgent)
		if c.APIKey != "" {
			req.Header.Set("Authorization", c.APIKey)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		if c.Debug {
			fmt.Printf("DEBUG: %s %s\n", method, url)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("executing request: %w", err)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			continue
		}

		if resp.StatusCode >= 400 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP error: %s - %s", resp.Status, string(bodyBytes))
		}

		// Remote mirrors do not always serve UTF-8; normalize here so
		// every parser downstream sees UTF-8.
		decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decoding response charset: %w", err)
		}

		return &bodyReader{Reader: decoded, closer: resp.Body}, nil
	}

	return nil, lastErr
}

// bodyReader pairs a decoded reader with the underlying body's closer.
type bodyReader struct {
	io.Reader
	closer io.Closer
}

func (b *bodyReader) Close() error {
	return b.closer.Close()
}
