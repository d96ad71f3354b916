package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calckit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Limiter, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	l, err := ratelimiter.New(cfg, ratelimiter.WithClock(c.Now), ratelimiter.WithCleanupInterval(0))
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l, c
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()
	for _, cfg := range []ratelimiter.Config{
		{Burst: 0, Refill: 1, Interval: time.Second},
		{Burst: 1, Refill: 0, Interval: time.Second},
		{Burst: 1, Refill: 1},
	} {
		_, err := ratelimiter.New(cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()
	l, c := newLimiter(t, ratelimiter.Config{Burst: 2, Refill: 1, Interval: time.Second})

	assert.Equal(t, 1, l.Allow("a").Remaining)
	assert.Equal(t, 0, l.Allow("a").Remaining)

	denied := l.Allow("a")
	assert.False(t, denied.Allowed())
	assert.Equal(t, 2, denied.Limit)
	assert.Equal(t, time.Second, denied.RetryAfter(c.Now()))

	assert.True(t, l.Allow("b").Allowed(), "keys are independent")

	c.Advance(time.Second)
	assert.Equal(t, 0, l.Allow("a").Remaining)
	assert.False(t, l.Allow("a").Allowed())

	c.Advance(time.Hour)
	assert.Equal(t, 1, l.Allow("a").Remaining, "refill never exceeds burst")

	l.Reset("a")
	assert.Equal(t, 1, l.Allow("a").Remaining)
}

func TestLimiter_Concurrent(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.Config{Burst: 50, Refill: 1, Interval: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.Config{Burst: 1, Refill: 1, Interval: time.Minute})

	var denyErr error
	mw := ratelimiter.Middleware(l,
		func(r *http.Request) string { return r.Header.Get("X-Client") },
		func(w http.ResponseWriter, _ *http.Request, err error) {
			denyErr = err
			w.WriteHeader(http.StatusTooManyRequests)
		},
	)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(client string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Client", client)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := call("c1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = call("c1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.ErrorIs(t, denyErr, ratelimiter.ErrLimitExceeded)

	w = call("")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"), "empty keys are not limited")
}

func TestMiddleware_DefaultDeny(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.Config{Burst: 1, Refill: 1, Interval: time.Second})
	h := ratelimiter.Middleware(l, func(*http.Request) string { return "k" }, nil)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
