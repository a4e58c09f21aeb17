package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com/"

	// APIVersion is the REST API version requested.
	APIVersion = "2022-11-28"

	// UserAgent identifies the toolkit to the API.
	UserAgent = "joss-dataset-ingest"

	// AcceptHeader is the media type requested.
	AcceptHeader = "application/vnd.github+json"
)

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// URL is the final request URL.
	URL string

	// RateLimit is parsed from the response headers.
	RateLimit RateLimitSnapshot
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	return nil
}

// Client issues authenticated requests against the GitHub REST API.
// A forbidden or too-many-requests response with an exhausted quota is
// retried exactly once after sleeping until the announced reset.
type Client struct {
	http     *http.Client
	gh       *gh.Client
	baseURL  *url.URL
	policy   RetryPolicy
	throttle *rate.Limiter

	mu   sync.Mutex
	last RateLimitSnapshot
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL           string
	httpClient        *http.Client
	policy            *RetryPolicy
	requestsPerSecond float64
}

// WithBaseURL overrides the API base URL (GitHub Enterprise, tests).
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithHTTPClient uses httpClient's transport underneath the bearer token.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = httpClient }
}

// WithRetryPolicy overrides the rate-limit retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *clientOptions) { o.policy = &p }
}

// WithRequestsPerSecond enables proactive throttling. Zero disables it.
func WithRequestsPerSecond(rps float64) Option {
	return func(o *clientOptions) { o.requestsPerSecond = rps }
}

// NewClient creates a client authenticated with the provider's token.
// The token is read immediately so a missing credential fails before any
// network call.
func NewClient(ctx context.Context, tokenProvider driven.TokenProvider, opts ...Option) (*Client, error) {
	o := clientOptions{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	token, err := tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	base, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}

	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: "Bearer"},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	ghc := gh.NewClient(tc)
	ghc.BaseURL = base
	ghc.UserAgent = UserAgent

	policy := RateLimitRetryPolicy()
	if o.policy != nil {
		policy = *o.policy
	}

	return &Client{
		http:     tc,
		gh:       ghc,
		baseURL:  base,
		policy:   policy,
		throttle: newThrottle(o.requestsPerSecond),
	}, nil
}

// parseBaseURL validates u and ensures a trailing slash.
func parseBaseURL(u string) (*url.URL, error) {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("github: invalid base URL %q", u)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	return parsed, nil
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// LastRateLimit returns the snapshot from the most recent response.
func (c *Client) LastRateLimit() RateLimitSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Request performs method against endpoint with the given query parameters.
// Endpoint may be absolute or relative to the base URL.
func (c *Client) Request(ctx context.Context, method, endpoint string, params url.Values) (*Response, error) {
	u, err := c.resolve(endpoint, params)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, u)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt < c.policy.Attempts() && c.rateLimited(resp); attempt++ {
		wait := c.rateLimitWait(resp.RateLimit)
		logger.Warn("Rate limited. Sleeping %ds until %s.",
			int64(wait/time.Second), c.policy.Now().Add(wait).UTC().Format(time.RFC3339))
		if err := c.policy.Sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		resp, err = c.do(ctx, method, u)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(method, resp)
	}

	logger.Info("%s %s -> %d. %s", method, resp.URL, resp.StatusCode, resp.RateLimit.Status())
	return resp, nil
}

// Get is shorthand for Request with GET.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	return c.Request(ctx, http.MethodGet, endpoint, params)
}

// rateLimited reports whether resp is a retryable rate-limit rejection.
func (c *Client) rateLimited(resp *Response) bool {
	if !c.policy.IsRetryable(resp.StatusCode) {
		return false
	}
	return resp.RateLimit.Exhausted() || resp.RateLimit.HasRetryAfter
}

// rateLimitWait computes the blocking wait for a rate-limited response.
func (c *Client) rateLimitWait(s RateLimitSnapshot) time.Duration {
	if s.Exhausted() {
		return c.policy.UntilReset(s.Reset, c.policy.Now())
	}
	return s.RetryAfter + c.policy.Margin
}

func (c *Client) resolve(endpoint string, params url.Values) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("github: invalid endpoint %q: %w", endpoint, err)
	}
	u := c.baseURL.ResolveReference(ref)
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// do performs a single request and reads the whole body.
func (c *Client) do(ctx context.Context, method, u string) (*Response, error) {
	if c.throttle != nil {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	req.Header.Set("User-Agent", UserAgent)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteAPIError{Method: method, URL: u, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &RemoteAPIError{StatusCode: httpResp.StatusCode, Method: method, URL: u, Err: err}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
		URL:        httpResp.Request.URL.String(),
		RateLimit:  ParseRateLimit(httpResp.Header),
	}

	c.mu.Lock()
	c.last = resp.RateLimit
	c.mu.Unlock()

	return resp, nil
}

// ValidateCredentials checks the token by fetching the authenticated user.
// Returns the user's login.
func (c *Client) ValidateCredentials(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", c.wrapError(err, "validate credentials")
	}
	return user.GetLogin(), nil
}

// Quota fetches the core REST quota from the rate_limit endpoint.
// This call does not count against the quota.
func (c *Client) Quota(ctx context.Context) (RateLimitSnapshot, error) {
	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return RateLimitSnapshot{}, c.wrapError(err, "get rate limit")
	}
	if limits == nil || limits.Core == nil {
		return RateLimitSnapshot{}, ErrUnexpectedPayload
	}
	core := limits.Core
	return RateLimitSnapshot{
		Remaining:    core.Remaining,
		Limit:        core.Limit,
		Reset:        core.Reset.Time.UTC(),
		HasRemaining: true,
		HasLimit:     true,
		HasReset:     !core.Reset.Time.IsZero(),
	}, nil
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Check for rate limit error
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	// Check for GitHub error response
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &RemoteAPIError{
			StatusCode: ghErr.Response.StatusCode,
			Body:       truncate(ghErr.Message, MaxErrorBody),
		}
		if ghErr.Response.Request != nil {
			apiErr.Method = ghErr.Response.Request.Method
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
