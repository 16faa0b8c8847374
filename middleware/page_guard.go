package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/tutorzindia/site/handlers"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
)

// PageGuard keeps the admin pages consistent with the visitor's session.
//
// Each request gets its own session cell, seeded from the session cookies
// (refreshing an expired access token when the refresh cookie is still
// good), and a guard for the page watching it. If the replayed session
// already sends the page elsewhere the request is redirected and the
// handler never runs. Otherwise the handler receives the client and guard
// through handlers.AdminPage; a sign-in or sign-out it performs moves the
// guard, and the handler follows the guard's destination.
type PageGuard struct {
	authService   services.AuthService
	secureCookies bool
}

// NewPageGuard returns the admin page guard.
func NewPageGuard(authService services.AuthService, secureCookies bool) *PageGuard {
	return &PageGuard{authService: authService, secureCookies: secureCookies}
}

// Guard wraps the handler of page.
func (m *PageGuard) Guard(page session.Page, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cell, client := m.restore(w, r)

		guard := session.Watch(cell, page, func(route string) {
			log.Printf("[guard] %s page moves to %s", page, route)
		})
		defer guard.Stop()

		if dest := guard.Destination(); dest != "" {
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}

		ctx := r.Context()
		if current := cell.Current(); current != nil {
			user := current.User
			ctx = context.WithValue(ctx, handlers.UserContextKey, &user)
		}
		ctx = context.WithValue(ctx, handlers.AdminPageContextKey, &handlers.AdminPage{
			Page:   page,
			Client: client,
			Guard:  guard,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restore builds the session cell of the request from its cookies. An
// expired access token is renewed through the client, so the cell moves
// with TOKEN_REFRESHED and the new cookies are set. A cookie that no longer
// works is cleared and the cell ends up signed out.
func (m *PageGuard) restore(w http.ResponseWriter, r *http.Request) (*session.Cell, *session.Client) {
	access := session.AccessToken(r)
	refresh := session.RefreshToken(r)
	if access == "" && refresh == "" {
		cell := session.NewCell(nil)
		return cell, session.NewClient(m.authService, cell)
	}

	if access != "" {
		if s, err := m.authService.GetSession(r.Context(), access, refresh); err == nil {
			cell := session.NewCell(s)
			return cell, session.NewClient(m.authService, cell)
		}
	}

	if refresh == "" {
		session.ClearCookies(w, m.secureCookies)
		cell := session.NewCell(nil)
		return cell, session.NewClient(m.authService, cell)
	}

	cell := session.NewCell(&models.AuthSession{RefreshToken: refresh})
	client := session.NewClient(m.authService, cell)
	s, err := client.Refresh(r.Context())
	if err != nil {
		cell.Set(session.SignedOut, nil)
		session.ClearCookies(w, m.secureCookies)
		return cell, client
	}
	session.SetCookies(w, s, m.secureCookies)
	return cell, client
}
