package github

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRateLimit(t *testing.T) {
	t.Run("all headers", func(t *testing.T) {
		h := http.Header{}
		h.Set(HeaderRateLimit, "5000")
		h.Set(HeaderRateRemaining, "0")
		h.Set(HeaderRateReset, "1700000000")

		s := ParseRateLimit(h)
		assert.Equal(t, 5000, s.Limit)
		assert.Equal(t, 0, s.Remaining)
		assert.True(t, s.Reset.Equal(epoch))
		assert.True(t, s.Exhausted())
		assert.Equal(t, "rate-limit: 0/5000 (resets 2023-11-14T22:13:20Z)", s.Status())
	})

	t.Run("no headers", func(t *testing.T) {
		s := ParseRateLimit(http.Header{})
		assert.False(t, s.Exhausted())
		assert.Equal(t, "rate-limit: unknown", s.Status())
	})

	t.Run("remaining zero without reset is not exhausted", func(t *testing.T) {
		h := http.Header{}
		h.Set(HeaderRateRemaining, "0")
		h.Set(HeaderRateLimit, "60")
		s := ParseRateLimit(h)
		assert.False(t, s.Exhausted())
		assert.Equal(t, "rate-limit: 0/60", s.Status())
	})

	t.Run("malformed reset", func(t *testing.T) {
		h := http.Header{}
		h.Set(HeaderRateRemaining, "10")
		h.Set(HeaderRateLimit, "60")
		h.Set(HeaderRateReset, "soon")
		s := ParseRateLimit(h)
		assert.False(t, s.HasReset)
		assert.Equal(t, "rate-limit: 10/60 (reset parse error)", s.Status())
	})

	t.Run("retry after", func(t *testing.T) {
		h := http.Header{}
		h.Set(HeaderRetryAfter, "30")
		s := ParseRateLimit(h)
		assert.True(t, s.HasRetryAfter)
		assert.Equal(t, 30*time.Second, s.RetryAfter)
	})
}

func TestNewThrottle(t *testing.T) {
	assert.Nil(t, newThrottle(0))
	assert.Nil(t, newThrottle(-1))
	assert.NotNil(t, newThrottle(2.5))
}

func TestRetryPolicy(t *testing.T) {
	t.Run("rate limit policy", func(t *testing.T) {
		p := RateLimitRetryPolicy()
		assert.Equal(t, 2, p.Attempts())
		assert.True(t, p.IsRetryable(http.StatusForbidden))
		assert.True(t, p.IsRetryable(http.StatusTooManyRequests))
		assert.False(t, p.IsRetryable(http.StatusInternalServerError))
		assert.Equal(t, 15*time.Second, p.UntilReset(epoch.Add(10*time.Second), epoch))
		assert.Equal(t, 5*time.Second, p.UntilReset(epoch.Add(-time.Hour), epoch))
	})

	t.Run("redirect backoff doubles up to the cap", func(t *testing.T) {
		p := RedirectRetryPolicy()
		want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
			16 * time.Second, 30 * time.Second, 30 * time.Second}
		for i, w := range want {
			assert.Equal(t, w, p.Backoff(i+1), "retry %d", i+1)
		}
		assert.Equal(t, time.Second, p.Backoff(0))
	})

	t.Run("attempts at least one", func(t *testing.T) {
		assert.Equal(t, 1, RetryPolicy{}.Attempts())
	})

	t.Run("system clock by default", func(t *testing.T) {
		before := time.Now()
		assert.False(t, RetryPolicy{}.Now().Before(before))
	})
}
