// Package middleware holds the layers a request passes before its handler.
//
// A middleware is a func(next http.Handler) http.Handler. It either does its
// job and calls next, or writes the response itself and stops the chain:
//
//	authMw.Require(adminMw.Require(http.HandlerFunc(h.List)))
package middleware

import (
	"context"
	"net/http"

	"github.com/tutorzindia/site/handlers"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
)

// AuthMiddleware validates the access token of API requests.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware returns the API auth middleware.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require rejects requests without a valid access token with 401. The token
// is read from "Authorization: Bearer <token>" or the access cookie. The
// user is loaded fresh so a deleted account stops working at once.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.AccessToken(r)
		if token == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization required")
			return
		}

		claims, err := m.authService.ValidateAccessToken(token)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		user, err := m.authService.GetUser(r.Context(), claims.UserID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
