package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorzindia/site/pkg/ratelimit"
)

func TestCSRFRequiresFormToken(t *testing.T) {
	var token string
	h := NewCSRF(bytes.Repeat([]byte("k"), 32), false).Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = csrf.Token(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		assert.Equal(t, "/admin", c.Path)
		assert.False(t, c.Secure)
	}

	post := func(form url.Values, withCookie bool) int {
		req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			for _, c := range cookies {
				req.AddCookie(c)
			}
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, post(url.Values{"mode": {"signin"}}, true))
	assert.Equal(t, http.StatusForbidden, post(url.Values{"gorilla.csrf.Token": {"bogus"}}, true))
	assert.Equal(t, http.StatusForbidden, post(url.Values{"gorilla.csrf.Token": {token}}, false))
	assert.Equal(t, http.StatusNoContent, post(url.Values{"gorilla.csrf.Token": {token}}, true))
}

func TestClientIPMiddleware(t *testing.T) {
	trust, err := ratelimit.NewProxyTrust([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	var seen string
	h := NewClientIPMiddleware(trust).Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ratelimit.ExtractIP(r)
	}))

	serve := func(remote string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.7")
		h.ServeHTTP(httptest.NewRecorder(), req)
		return seen
	}

	assert.Equal(t, "203.0.113.9", serve("10.0.0.5:41000"))
	assert.Equal(t, "198.51.100.1", serve("198.51.100.1:41000"), "an untrusted peer cannot pick its address")
}
