package handlers

import (
	"net/http"
	"strconv"

	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
)

// throttle checks the submission limiter for the client's IP. When the IP is
// over its budget it sets Retry-After and returns the notification to show;
// otherwise it returns nil. A nil limiter never throttles.
func throttle(w http.ResponseWriter, r *http.Request, limiter *ratelimit.SubmissionLimiter) *pkg.Notification {
	if limiter == nil {
		return nil
	}

	ip := ratelimit.ExtractIP(r)
	if limiter.Allow(ip) {
		return nil
	}

	retryAfter := limiter.RetryAfterSeconds(ip)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	loc := i18n.FromRequest(r)
	return &pkg.Notification{
		Title: loc.T("notify.error"),
		Description: loc.TWithParams("notify.tooManyRequests", map[string]string{
			"time": ratelimit.FormatRetryMessage(retryAfter),
		}),
		Variant: pkg.VariantDestructive,
	}
}

// writeThrottled sends the 429 envelope for n.
func writeThrottled(w http.ResponseWriter, n *pkg.Notification) {
	pkg.Envelope(w, http.StatusTooManyRequests, pkg.APIResponse{
		Success:      false,
		Error:        n.Description,
		Notification: n,
	})
}
