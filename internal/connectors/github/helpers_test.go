package github

import (
	"context"
	"sync"
	"time"
)

// fakeClock records sleeps and advances its time instead of blocking.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// staticToken is a TokenProvider with a fixed result.
type staticToken struct {
	token string
	err   error
}

func (s staticToken) GetToken(context.Context) (string, error) { return s.token, s.err }
func (s staticToken) AuthorizationID() string                  { return "TEST_TOKEN" }
func (s staticToken) IsAuthenticated() bool                    { return s.err == nil && s.token != "" }
