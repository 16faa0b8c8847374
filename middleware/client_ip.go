package middleware

import (
	"net/http"

	"github.com/tutorzindia/site/pkg/ratelimit"
)

// ClientIPMiddleware records the client address of every request for the
// rate limiters. Forwarding headers count only from trusted proxies.
type ClientIPMiddleware struct {
	trust *ratelimit.ProxyTrust
}

// NewClientIPMiddleware returns the middleware for trust.
func NewClientIPMiddleware(trust *ratelimit.ProxyTrust) *ClientIPMiddleware {
	return &ClientIPMiddleware{trust: trust}
}

// Require wraps next.
func (m *ClientIPMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, ratelimit.WithClientIP(r, m.trust.ClientIP(r)))
	})
}
