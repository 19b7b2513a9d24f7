// Package probe makes single observations of the regions service over HTTP.
//
// A probe call is one request and one response: there are no retries, no caching and no
// redirect following. A network failure or timeout is returned as a *TransportError, which is
// distinct from an HTTP error status; any status code the service sends is an Observation.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/regions-qa/regions-contract-tests/framework"

	"github.com/google/uuid"
)

const (
	DefaultTimeout  = time.Second * 10
	RequestIDHeader = "X-Request-Id"
	MaxBodySize     = 4 * 1024 * 1024
)

// Probe issues requests against one base URL.
type Probe struct {
	baseURL *url.URL
	timeout time.Duration
	client  *http.Client
}

// New creates a Probe for an http or https base URL. Every request is bounded by timeout.
func New(baseURL string, timeout time.Duration) (*Probe, error) {
	return NewWithClient(baseURL, timeout, nil)
}

// NewWithClient is like New but sends requests through a copy of client, for instance one that
// trusts a private certificate authority. The copy never follows redirects and gets timeout as
// its Timeout. A nil client means a default one.
func NewWithClient(baseURL string, timeout time.Duration, client *http.Client) (*Probe, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return newProbe(u, timeout, client), nil
}

func newProbe(u *url.URL, timeout time.Duration, base *http.Client) *Probe {
	var client http.Client
	if base != nil {
		client = *base
	}
	client.Timeout = timeout
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Probe{baseURL: u, timeout: timeout, client: &client}
}

func (p *Probe) BaseURL() string { return p.baseURL.String() }

func (p *Probe) Scheme() string { return p.baseURL.Scheme }

// WithScheme returns a probe for the same host and path using a different scheme.
func (p *Probe) WithScheme(scheme string) *Probe {
	u := *p.baseURL
	u.Scheme = scheme
	return newProbe(&u, p.timeout, p.client)
}

// Do sends one request and returns what the service answered. The logger receives a line for
// the request and one for the outcome; it may be nil.
func (p *Probe) Do(
	ctx context.Context,
	method, path string,
	query url.Values,
	logger framework.Logger,
) (Observation, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	u := *p.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	obs := Observation{
		Method:    method,
		URL:       u.String(),
		RequestID: uuid.NewString(),
	}
	req, err := http.NewRequestWithContext(ctx, method, obs.URL, nil)
	if err != nil {
		return obs, &TransportError{Method: method, URL: obs.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, obs.RequestID)

	logger.Printf(">> %s %s (%s)", method, obs.URL, obs.RequestID)
	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		obs.Duration = time.Since(start)
		logger.Printf("<< transport error after %s: %s", obs.Duration, err)
		return obs, &TransportError{Method: method, URL: obs.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	obs.Duration = time.Since(start)
	if err != nil {
		logger.Printf("<< error reading body after %s: %s", obs.Duration, err)
		return obs, &TransportError{Method: method, URL: obs.URL, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if len(body) > MaxBodySize {
		body = body[:MaxBodySize]
		obs.Truncated = true
		logger.Printf("<< body is larger than %d bytes; only the first %d were kept", MaxBodySize, MaxBodySize)
	}
	obs.StatusCode = resp.StatusCode
	obs.Header = resp.Header
	obs.Body = body
	logger.Printf("<< %d %s in %s: %s", obs.StatusCode, resp.Header.Get("Content-Type"), obs.Duration, obs.BodyFragment())
	return obs, nil
}

// Get is shorthand for Do with the GET method.
func (p *Probe) Get(ctx context.Context, path string, query url.Values, logger framework.Logger) (Observation, error) {
	return p.Do(ctx, http.MethodGet, path, query, logger)
}
