package github

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimitSnapshot is the quota state reported by one response.
// Each header is optional; the Has* flags record which ones were present
// and well-formed.
type RateLimitSnapshot struct {
	Remaining int
	Limit     int
	Reset     time.Time

	// RetryAfter is the secondary rate limit wait, if the server sent one.
	RetryAfter time.Duration

	HasRemaining  bool
	HasLimit      bool
	HasReset      bool
	HasRetryAfter bool

	// resetMalformed is set when the reset header was present but unparseable.
	resetMalformed bool
}

// ParseRateLimit reads the rate limit headers of a response.
func ParseRateLimit(h http.Header) RateLimitSnapshot {
	var s RateLimitSnapshot

	if remaining := h.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			s.Remaining = val
			s.HasRemaining = true
		}
	}

	if limit := h.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			s.Limit = val
			s.HasLimit = true
		}
	}

	if reset := h.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			s.Reset = time.Unix(val, 0).UTC()
			s.HasReset = true
		} else {
			s.resetMalformed = true
		}
	}

	if retryAfter := h.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
			s.RetryAfter = time.Duration(seconds) * time.Second
			s.HasRetryAfter = true
		}
	}

	return s
}

// Exhausted reports whether the primary quota is used up with a known reset.
func (s RateLimitSnapshot) Exhausted() bool {
	return s.HasRemaining && s.Remaining == 0 && s.HasReset
}

// Status formats the snapshot for logging.
func (s RateLimitSnapshot) Status() string {
	if !s.HasRemaining || !s.HasLimit {
		return "rate-limit: unknown"
	}
	if s.resetMalformed {
		return fmt.Sprintf("rate-limit: %d/%d (reset parse error)", s.Remaining, s.Limit)
	}
	if !s.HasReset {
		return fmt.Sprintf("rate-limit: %d/%d", s.Remaining, s.Limit)
	}
	return fmt.Sprintf("rate-limit: %d/%d (resets %s)", s.Remaining, s.Limit, s.Reset.Format(time.RFC3339))
}

// newThrottle creates the proactive token bucket. A non-positive rate disables it.
func newThrottle(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 || math.IsInf(requestsPerSecond, 1) {
		return nil
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}
