package http

import (
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter caps inbound events per connection with a token bucket that
// holds perMinute tokens and refills at perMinute per minute. A nil limiter
// allows everything.
type rateLimiter struct {
	lim *rate.Limiter
	now func() time.Time
}

func newRateLimiter(perMinute int) *rateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &rateLimiter{
		lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		now: time.Now,
	}
}

func (r *rateLimiter) allow() bool {
	if r == nil {
		return true
	}
	return r.lim.AllowN(r.now(), 1)
}
