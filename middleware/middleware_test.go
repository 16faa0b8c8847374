package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/handlers"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
)

type nopPublisher struct{}

func (nopPublisher) PublishSessionChange(string, session.Event) {}
func (nopPublisher) PublishContentUpdate(string)                {}

func newAuth(t *testing.T) services.AuthService {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "mw.db"), database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return services.NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		nopPublisher{}, nil, "test-secret", 15, 7, "http://localhost",
	)
}

func signIn(t *testing.T, auth services.AuthService, email string) *models.AuthSession {
	t.Helper()
	ctx := context.Background()
	_, err := auth.SignUp(ctx, &models.SignUpRequest{FullName: "User", Email: email, Password: "secret1"})
	require.NoError(t, err)
	sess, err := auth.SignIn(ctx, &models.SignInRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return sess
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthAndAdminMiddleware(t *testing.T) {
	auth := newAuth(t)
	owner := signIn(t, auth, "owner@example.com")
	staff := signIn(t, auth, "staff@example.com")

	chain := NewAuthMiddleware(auth).Require(NewAdminMiddleware().Require(http.HandlerFunc(okHandler)))

	tests := []struct {
		name   string
		token  string
		cookie bool
		want   int
	}{
		{name: "no token", want: http.StatusUnauthorized},
		{name: "garbage token", token: "garbage", want: http.StatusUnauthorized},
		{name: "non admin", token: staff.AccessToken, want: http.StatusForbidden},
		{name: "admin header", token: owner.AccessToken, want: http.StatusNoContent},
		{name: "admin cookie", token: owner.AccessToken, cookie: true, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations", nil)
			if tt.token != "" {
				if tt.cookie {
					req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: tt.token})
				} else {
					req.Header.Set("Authorization", "Bearer "+tt.token)
				}
			}
			rec := httptest.NewRecorder()
			chain.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestPageGuardRedirects(t *testing.T) {
	auth := newAuth(t)
	sess := signIn(t, auth, "owner@example.com")
	guard := NewPageGuard(auth, false)

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		page := r.Context().Value(handlers.AdminPageContextKey).(*handlers.AdminPage)
		assert.NotNil(t, page.Client)
		w.WriteHeader(http.StatusOK)
	})

	// Signed out on the dashboard.
	rec := httptest.NewRecorder()
	guard.Guard(session.DashboardPage, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.LoginRoute, rec.Header().Get("Location"))
	assert.False(t, reached)

	// Signed in on the login page.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: sess.AccessToken})
	req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: sess.RefreshToken})
	rec = httptest.NewRecorder()
	guard.Guard(session.LoginPage, next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.DashboardRoute, rec.Header().Get("Location"))
	assert.False(t, reached)

	// Signed out on the login page.
	rec = httptest.NewRecorder()
	guard.Guard(session.LoginPage, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestPageGuardRefreshesExpiredAccess(t *testing.T) {
	auth := newAuth(t)
	sess := signIn(t, auth, "owner@example.com")
	guard := NewPageGuard(auth, false)

	var user *models.User
	var current *models.AuthSession
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ = r.Context().Value(handlers.UserContextKey).(*models.User)
		current = r.Context().Value(handlers.AdminPageContextKey).(*handlers.AdminPage).Client.Session()
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: "expired"})
	req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: sess.RefreshToken})
	rec := httptest.NewRecorder()
	guard.Guard(session.DashboardPage, next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, "owner@example.com", user.Email)

	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	assert.NotEmpty(t, cookies[session.AccessCookie])
	assert.NotEqual(t, sess.RefreshToken, cookies[session.RefreshCookie], "refresh rotates the token")

	require.NotNil(t, current)
	assert.Equal(t, cookies[session.RefreshCookie], current.RefreshToken, "the page client holds the renewed session")
	assert.Equal(t, "owner@example.com", current.User.Email)
}

func TestPageGuardClearsBadCookies(t *testing.T) {
	auth := newAuth(t)
	guard := NewPageGuard(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: "expired"})
	req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: "unknown"})
	rec := httptest.NewRecorder()
	guard.Guard(session.DashboardPage, http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}
