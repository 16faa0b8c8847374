package middleware

import (
	"log"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/tutorzindia/site/session"
)

// CSRF guards the admin page forms. Safe requests pass and get a token for
// the page they render; a POST must send it back in the gorilla.csrf.Token
// field together with the matching cookie.
type CSRF struct {
	protect   func(http.Handler) http.Handler
	plaintext bool
}

// NewCSRF builds the form token middleware. key must be 32 bytes. Without
// secure cookies the site is assumed to be served over plain HTTP, where
// there is no Referer to check.
func NewCSRF(key []byte, secureCookies bool) *CSRF {
	return &CSRF{
		protect: csrf.Protect(key,
			csrf.Secure(secureCookies),
			csrf.Path(session.LoginRoute),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
		),
		plaintext: !secureCookies,
	}
}

// Require wraps next.
func (m *CSRF) Require(next http.Handler) http.Handler {
	protected := m.protect(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.plaintext && r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protected.ServeHTTP(w, r)
	})
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	log.Printf("[csrf] rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
	http.Error(w, "The form has expired. Reload the page and try again.", http.StatusForbidden)
}
