// Package handlers holds the HTTP handlers of the site: the JSON API under
// /api and the server-rendered pages.
//
// Handlers are thin. They decode the request, call a service (through the
// form gateway for forms) and write the response. No handler touches the
// database or decides who may do what.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/session"
)

type contextKey string

// UserContextKey carries the signed-in *models.User, set by the auth middleware.
const UserContextKey contextKey = "user"

// AdminPageContextKey carries the *AdminPage of a guarded admin page.
const AdminPageContextKey contextKey = "admin_page"

// AdminPage is the session state of one admin page request: the client
// that signs in and out, and the guard that decides where the page goes.
type AdminPage struct {
	Page   session.Page
	Client *session.Client
	Guard  *session.Guard
}

// Actor returns the signed-in user, or nil.
func (p *AdminPage) Actor() *models.User {
	if s := p.Client.Session(); s != nil {
		u := s.User
		return &u
	}
	return nil
}

// userFrom returns the user the auth middleware stored, or nil.
func userFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserContextKey).(*models.User)
	return user
}

func adminPageFrom(r *http.Request) *AdminPage {
	page, _ := r.Context().Value(AdminPageContextKey).(*AdminPage)
	return page
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
