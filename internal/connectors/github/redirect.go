package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

// Ensure RedirectResolver implements the interface.
var _ driven.URLResolver = (*RedirectResolver)(nil)

// RedirectTimeout bounds a single HEAD request, redirects included.
const RedirectTimeout = 60 * time.Second

// ErrRedirectFailed is returned when a URL could not be followed.
var ErrRedirectFailed = errors.New("github: redirect resolution failed")

// RedirectResolver follows HTTP redirects with HEAD requests to find the
// final location of a URL. It never sends API credentials.
type RedirectResolver struct {
	http   *http.Client
	policy RetryPolicy
}

// NewRedirectResolver creates a resolver. A nil httpClient uses a plain
// client with RedirectTimeout.
func NewRedirectResolver(httpClient *http.Client, policy RetryPolicy) *RedirectResolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RedirectTimeout}
	}
	return &RedirectResolver{http: httpClient, policy: policy}
}

// Resolve returns the final URL after following redirects from rawURL.
// Transient statuses are retried per the policy. On failure it returns
// rawURL unchanged together with an error wrapping ErrRedirectFailed, so
// callers can keep the original value.
func (r *RedirectResolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return rawURL, fmt.Errorf("%w: empty URL", ErrRedirectFailed)
	}

	var lastErr error
	for attempt := 1; attempt <= r.policy.Attempts(); attempt++ {
		if attempt > 1 {
			wait := r.policy.Backoff(attempt - 1)
			logger.Debug("Retrying HEAD %s in %s (attempt %d/%d).", rawURL, wait, attempt, r.policy.Attempts())
			if err := r.policy.Sleep(ctx, wait); err != nil {
				return rawURL, fmt.Errorf("%w: %w", ErrRedirectFailed, err)
			}
		}

		final, status, err := r.head(ctx, rawURL)
		switch {
		case err != nil:
			lastErr = err
			if ctx.Err() != nil {
				return rawURL, fmt.Errorf("%w: %w", ErrRedirectFailed, err)
			}
		case status >= 200 && status < 400:
			logger.Debug("Resolved %s -> %s", rawURL, final)
			return final, nil
		case r.policy.IsRetryable(status):
			lastErr = fmt.Errorf("HEAD %s: status %d", rawURL, status)
		default:
			return rawURL, fmt.Errorf("%w: HEAD %s: status %d", ErrRedirectFailed, rawURL, status)
		}
	}

	logger.Warn("Could not resolve %s: %v", rawURL, lastErr)
	return rawURL, fmt.Errorf("%w: %w", ErrRedirectFailed, lastErr)
}

func (r *RedirectResolver) head(ctx context.Context, rawURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Request.URL.String(), resp.StatusCode, nil
}
