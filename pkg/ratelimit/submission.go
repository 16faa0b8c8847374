package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/tutorzindia/site/pkg/cache"
)

// SubmissionLimiter is a token bucket per IP for public form submissions.
// Visitors idle for longer than expiresIn are forgotten.
type SubmissionLimiter struct {
	visitors *cache.TTLCache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewSubmissionLimiter allows burst submissions at once and then one every
// interval, per IP.
func NewSubmissionLimiter(interval time.Duration, burst int, expiresIn time.Duration) *SubmissionLimiter {
	return &SubmissionLimiter{
		visitors: cache.New[string, *rate.Limiter](expiresIn, time.Minute),
		limit:    rate.Every(interval),
		burst:    burst,
	}
}

// Allow takes a token for ip.
func (sl *SubmissionLimiter) Allow(ip string) bool {
	return sl.visitor(ip).Allow()
}

// RetryAfterSeconds is how long ip has to wait for the next token.
func (sl *SubmissionLimiter) RetryAfterSeconds(ip string) int {
	r := sl.visitor(ip).Reserve()
	defer r.Cancel()

	delay := r.Delay()
	if delay <= 0 {
		return 0
	}
	return int(delay.Seconds()) + 1
}

// Stop ends the cleanup loop.
func (sl *SubmissionLimiter) Stop() {
	sl.visitors.Close()
}

func (sl *SubmissionLimiter) visitor(ip string) *rate.Limiter {
	return sl.visitors.Fetch(ip, func() *rate.Limiter {
		return rate.NewLimiter(sl.limit, sl.burst)
	})
}
