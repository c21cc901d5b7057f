// Package apiclient is the console's accessor for the school-management API.
//
// Reads return whole collections: the API does no server-side filtering,
// sorting or paging, so every list view fetches everything and derives its
// page locally (see package listview). Each call is a single attempt; callers
// decide how to surface failures.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/schooladmin/internal/app/system/metrics"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Resource names under /api.
const (
	ResourceSchools   = "Schools"
	ResourceCenters   = "Centers"
	ResourceDistricts = "Centers/districts"
	ResourceTehsils   = "Centers/tehsils"
	ResourceTeachers  = "Teachers"
	ResourceStudents  = "Students"
)

// DefaultLoginPath is used when Options.LoginPath is empty.
const DefaultLoginPath = "/api/UserDetails/login"

// maxErrorBody bounds how much of a rejected response is kept for logging.
const maxErrorBody = 2 << 10

// Record is an untyped API record: field name to JSON scalar.
type Record map[string]any

// Options configures a Client.
type Options struct {
	BaseURL   string // scheme://host[:port] of the API; paths are /api/...
	LoginPath string
	Transport http.RoundTripper // nil means http.DefaultTransport
	Metrics   *metrics.Upstream
}

// Client calls the school API. It is safe for concurrent use; WithToken
// returns a copy bound to one session's bearer token.
type Client struct {
	base      *url.URL
	loginPath string
	transport http.RoundTripper
	http      *http.Client
	metrics   *metrics.Upstream
	log       *zap.Logger
}

// New validates opts and builds a Client.
func New(opts Options, logger *zap.Logger) (*Client, error) {
	base, err := ParseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return &Client{
		base:      base,
		loginPath: loginPath,
		transport: opts.Transport,
		http:      &http.Client{Transport: opts.Transport},
		metrics:   opts.Metrics,
		log:       logger,
	}, nil
}

// ParseBaseURL checks that raw is an absolute http(s) URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("apiclient: base URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("apiclient: base URL %q has no host", raw)
	}
	return u, nil
}

// WithToken returns a Client that sends token as a bearer credential.
// An empty token returns c unchanged.
func (c *Client) WithToken(token string) *Client {
	if token == "" {
		return c
	}
	cp := *c
	cp.http = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.transport,
		},
	}
	return &cp
}

// FetchCollection GETs /api/<resource> and returns its records untyped.
func (c *Client) FetchCollection(ctx context.Context, resource string) ([]Record, error) {
	return Fetch[Record](ctx, c, resource)
}

// Fetch GETs /api/<resource> and decodes the array into []T.
// A null body yields an empty slice.
func Fetch[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Fetch())
	defer cancel()

	var out []T
	if err := c.do(ctx, http.MethodGet, apiPath(resource), resource, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Ping checks that the API answers. It reads the districts list because it
// is the smallest collection the API serves.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	return c.do(ctx, http.MethodGet, apiPath(ResourceDistricts), ResourceDistricts, nil, nil)
}

func (c *Client) submit(ctx context.Context, method, path, label string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Submit())
	defer cancel()
	return c.do(ctx, method, path, label, body, out)
}

func (c *Client) do(ctx context.Context, method, path, label string, body, out any) error {
	target := c.base.JoinPath(path).String()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode %s body: %w", label, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("apiclient: build %s %s: %w", method, label, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(label, method, metrics.OutcomeNetwork, time.Since(start))
		c.log.Warn("school API unreachable",
			zap.String("method", method),
			zap.String("resource", label),
			zap.Error(err))
		return &NetworkError{Method: method, Resource: label, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.metrics.Observe(label, method, metrics.OutcomeRejected, time.Since(start))
		c.log.Warn("school API rejected request",
			zap.String("method", method),
			zap.String("resource", label),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(excerpt)))
		return &StatusError{Method: method, Resource: label, StatusCode: resp.StatusCode, Body: string(excerpt)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.Observe(label, method, metrics.OutcomeOK, time.Since(start))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.Observe(label, method, metrics.OutcomeNetwork, time.Since(start))
		return &NetworkError{Method: method, Resource: label, Err: fmt.Errorf("decode response: %w", err)}
	}
	c.metrics.Observe(label, method, metrics.OutcomeOK, time.Since(start))
	return nil
}

func apiPath(resource string) string {
	return "api/" + strings.TrimPrefix(resource, "/")
}

func itoa(n int) string { return strconv.Itoa(n) }
