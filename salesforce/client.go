// Package salesforce implements kbmigrate.Uploader and
// kbmigrate.ArticleService against the Salesforce REST API.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/kbmigrate"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for REST requests. File uploads
// carry whole files base64-encoded, so it is generous.
const DefaultTimeout = 2 * time.Minute

// Compile-time interface verification.
var (
	_ kbmigrate.Uploader       = (*Client)(nil)
	_ kbmigrate.ArticleService = (*Client)(nil)
)

// Schema names the knowledge article object and fields.
type Schema struct {
	Object       string
	TitleField   string
	URLNameField string
	BodyField    string
	Language     string
}

// SchemaFromConfig returns the schema configured in cfg.
func SchemaFromConfig(cfg kbmigrate.Config) Schema {
	return Schema{
		Object:       cfg.ArticleObject,
		TitleField:   cfg.TitleField,
		URLNameField: cfg.URLNameField,
		BodyField:    cfg.BodyField,
		Language:     cfg.Language,
	}
}

// Client talks to one Salesforce org. The session is loaded on first use
// and shared by concurrent calls.
type Client struct {
	loader     SessionLoader
	httpClient *http.Client
	limiter    *rate.Limiter
	apiVersion string
	schema     Schema
	timeout    time.Duration

	mu      sync.Mutex
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for REST requests.
// Defaults to DefaultTimeout if not specified or not positive.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets the HTTP client. It overrides WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestsPerSecond limits the request rate across all callers.
// Zero or negative disables limiting.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithAPIVersion sets the REST API version, e.g. "60.0".
func WithAPIVersion(v string) Option {
	return func(c *Client) {
		c.apiVersion = v
	}
}

// WithSchema sets the knowledge article object and field names.
func WithSchema(s Schema) Option {
	return func(c *Client) {
		c.schema = s
	}
}

// NewClient creates a new Client authenticating through loader.
func NewClient(loader SessionLoader, opts ...Option) *Client {
	c := &Client{
		loader:     loader,
		apiVersion: "60.0",
		schema:     SchemaFromConfig(kbmigrate.DefaultConfig()),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Session returns the current session, loading it if needed.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return c.session, nil
	}
	s, err := c.loader.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// invalidate drops the cached session so the next call reloads it.
func (c *Client) invalidate(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == s {
		c.session = nil
	}
}

// restError is one entry of a Salesforce REST error response.
type restError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// do sends a JSON request to path, relative to the versioned data API
// unless it starts with "/". The response is decoded into out if non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	sess, err := c.Session(ctx)
	if err != nil {
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	url := sess.InstanceURL + path
	if !strings.HasPrefix(path, "/") {
		url = sess.InstanceURL + "/services/data/v" + c.apiVersion + "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidate(sess)
		}
		return apiError(method, path, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func apiError(method, path string, status int, data []byte) error {
	msg := strings.TrimSpace(string(data))
	var errs []restError
	if json.Unmarshal(data, &errs) == nil && len(errs) > 0 {
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			parts = append(parts, e.ErrorCode+": "+e.Message)
		}
		msg = strings.Join(parts, "; ")
	}

	code := kbmigrate.EINTERNAL
	switch status {
	case http.StatusBadRequest:
		code = kbmigrate.EINVALID
	case http.StatusNotFound:
		code = kbmigrate.ENOTFOUND
	case http.StatusConflict:
		code = kbmigrate.ECONFLICT
	}
	return kbmigrate.Errorf(code, "salesforce %s %s: HTTP %d: %s", method, path, status, msg)
}

// createResponse is the body returned when creating an sObject.
type createResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
