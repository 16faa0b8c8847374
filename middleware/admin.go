package middleware

import (
	"net/http"

	"github.com/tutorzindia/site/handlers"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

// AdminMiddleware only lets admins through. It runs after AuthMiddleware.
type AdminMiddleware struct{}

// NewAdminMiddleware returns the admin check.
func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// Require answers 401 without a user in the context and 403 for non-admins.
func (m *AdminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok || user == nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		if !user.IsAdmin {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "admin privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
