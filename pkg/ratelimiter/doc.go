// Package ratelimiter throttles HTTP clients with in-memory token buckets.
//
// Each key, usually the client IP, gets Burst tokens. Refill tokens come
// back every Interval, never above Burst. A request spends one token and is
// denied when none are left:
//
//	l, err := ratelimiter.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//	r.Use(ratelimiter.Middleware(l, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	}, nil))
//
// Buckets untouched for an hour are dropped by a background sweep.
package ratelimiter
