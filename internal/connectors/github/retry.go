package github

import (
	"context"
	"time"
)

// Clock abstracts time so retry schedules can be tested without sleeping.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy is a bounded retry schedule.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry; it doubles per retry.
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff. Zero means uncapped.
	MaxDelay time.Duration

	// Margin is added to any server-announced wait.
	Margin time.Duration

	// RetryableStatuses lists the HTTP statuses that trigger a retry.
	RetryableStatuses []int

	// Clock supplies time and sleeping. Nil means the system clock.
	Clock Clock
}

// RateLimitMargin is the slack added to the announced rate limit reset.
const RateLimitMargin = 5 * time.Second

// RateLimitRetryPolicy allows a single retry after a rate-limited response.
func RateLimitRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       2,
		Margin:            RateLimitMargin,
		RetryableStatuses: []int{403, 429},
	}
}

// RedirectRetryPolicy retries HEAD requests with exponential backoff.
func RedirectRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       4,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RetryableStatuses: []int{403, 429, 500, 502, 503, 504},
	}
}

// WithClock returns a copy of the policy using c.
func (p RetryPolicy) WithClock(c Clock) RetryPolicy {
	p.Clock = c
	return p
}

// Attempts returns the attempt ceiling, at least 1.
func (p RetryPolicy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// IsRetryable reports whether status triggers a retry.
func (p RetryPolicy) IsRetryable(status int) bool {
	for _, s := range p.RetryableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Backoff returns the wait before the given retry (1 for the first retry).
func (p RetryPolicy) Backoff(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	d := p.BaseDelay
	for i := 1; i < retry; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// UntilReset returns max(0, reset-now) in whole seconds plus the margin.
func (p RetryPolicy) UntilReset(reset, now time.Time) time.Duration {
	secs := reset.Unix() - now.Unix()
	if secs < 0 {
		secs = 0
	}
	return time.Duration(secs)*time.Second + p.Margin
}

func (p RetryPolicy) clock() Clock {
	if p.Clock == nil {
		return SystemClock()
	}
	return p.Clock
}

// Now returns the policy clock's current time.
func (p RetryPolicy) Now() time.Time {
	return p.clock().Now()
}

// Sleep blocks on the policy clock.
func (p RetryPolicy) Sleep(ctx context.Context, d time.Duration) error {
	return p.clock().Sleep(ctx, d)
}
