package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive burst, refill or interval.
	ErrInvalidConfig = errors.New("invalid rate limit configuration")

	// ErrLimitExceeded is what Middleware hands to the deny handler.
	ErrLimitExceeded = errors.New("rate limit exceeded")
)
