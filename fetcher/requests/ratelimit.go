package requests

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter keeps the browser polite with the CDN.
// Every request waits for a token, bursts are allowed up to the per second rate.
type RateLimiter struct {
	limiter *rate.Limiter
}

// Create a instance of the rate limiter.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		return &RateLimiter{}
	}

	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait until a request can be done or the context is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}
