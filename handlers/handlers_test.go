package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/handlers"
	"github.com/tutorzindia/site/middleware"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
	"github.com/tutorzindia/site/web"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(i18n.Locales()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type nopPublisher struct{}

func (nopPublisher) PublishSessionChange(string, session.Event) {}
func (nopPublisher) PublishContentUpdate(string)                {}

// countingGallery counts the list queries the gallery pages make.
type countingGallery struct {
	repository.GalleryRepository
	lists atomic.Int32
}

func (r *countingGallery) List(ctx context.Context) ([]models.GalleryImage, error) {
	r.lists.Add(1)
	return r.GalleryRepository.List(ctx)
}

type countingAchievements struct {
	repository.AchievementRepository
	lists atomic.Int32
}

func (r *countingAchievements) List(ctx context.Context) ([]models.Achievement, error) {
	r.lists.Add(1)
	return r.AchievementRepository.List(ctx)
}

type site struct {
	server        *httptest.Server
	auth          services.AuthService
	registrations services.RegistrationService
	contact       services.ContactService
	gallery       *countingGallery
	achievements  *countingAchievements
}

type siteOptions struct {
	limiter      *ratelimit.SubmissionLimiter
	loginLimiter *ratelimit.LoginRateLimiter
}

var csrfTestKey = bytes.Repeat([]byte("k"), 32)

// newSite serves the public pages, the admin pages and the JSON API the
// way main wires them, on a fresh database.
func newSite(t *testing.T, opts siteOptions) *site {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "site.db"), database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pub := nopPublisher{}
	authSvc := services.NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		pub, nil, "test-secret", 15, 7, "http://localhost",
	)
	galleryRepo := &countingGallery{GalleryRepository: repository.NewSQLiteGalleryRepo(db.Conn)}
	achievementRepo := &countingAchievements{AchievementRepository: repository.NewSQLiteAchievementRepo(db.Conn)}

	regSvc := services.NewRegistrationService(repository.NewSQLiteRegistrationRepo(db.Conn), pub, nil)
	gallerySvc := services.NewGalleryService(galleryRepo, nil, 5<<20, pub)
	achievementSvc := services.NewAchievementService(achievementRepo, pub)
	contactSvc := services.NewContactService(db.Conn,
		repository.NewSQLiteContactInfoRepo(db.Conn),
		repository.NewSQLiteContactMessageRepo(db.Conn),
		nil, "", pub)

	renderer, err := web.NewRenderer(nil)
	require.NoError(t, err)

	pages := handlers.NewPageHandler(renderer, regSvc, gallerySvc, achievementSvc, contactSvc, opts.limiter)
	adminPages := handlers.NewAdminPageHandler(renderer, regSvc, gallerySvc, achievementSvc, contactSvc,
		opts.loginLimiter, handlers.AdminPageConfig{MaxUploadSize: 5 << 20})
	authHandler := handlers.NewAuthHandler(authSvc, opts.loginLimiter, false)
	regHandler := handlers.NewRegistrationHandler(regSvc, opts.limiter)
	contactHandler := handlers.NewContactHandler(contactSvc, opts.limiter)
	contentHandler := handlers.NewContentHandler(gallerySvc, achievementSvc, contactSvc)

	authMw := middleware.NewAuthMiddleware(authSvc)
	adminMw := middleware.NewAdminMiddleware()
	guard := middleware.NewPageGuard(authSvc, false)
	csrfMw := middleware.NewCSRF(csrfTestKey, false)
	admin := func(h http.HandlerFunc) http.Handler { return authMw.Require(adminMw.Require(h)) }
	login := func(h http.HandlerFunc) http.Handler { return csrfMw.Require(guard.Guard(session.LoginPage, h)) }
	dashboard := func(h http.HandlerFunc) http.Handler {
		return csrfMw.Require(guard.Guard(session.DashboardPage, h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", pages.Home)
	mux.HandleFunc("GET /gallery", pages.Gallery)
	mux.HandleFunc("GET /achievements", pages.Achievements)
	mux.HandleFunc("GET /contact", pages.Contact)
	mux.HandleFunc("POST /contact", pages.ContactSubmit)
	mux.HandleFunc("GET /inquiry", pages.Inquiry)
	mux.HandleFunc("POST /inquiry", pages.InquirySubmit)
	mux.HandleFunc("/", pages.NotFound)

	mux.Handle("GET /admin", login(adminPages.Login))
	mux.Handle("POST /admin", login(adminPages.LoginSubmit))
	mux.Handle("GET /admin/dashboard", dashboard(adminPages.Dashboard))
	mux.Handle("POST /admin/dashboard/gallery", dashboard(adminPages.AddGalleryImage))
	mux.Handle("POST /admin/dashboard/achievements", dashboard(adminPages.AddAchievement))
	mux.Handle("POST /admin/dashboard/settings", dashboard(adminPages.UpdateSettings))
	mux.Handle("GET /admin/dashboard/registrations.csv", dashboard(adminPages.ExportCSV))
	mux.Handle("POST /admin/signout", dashboard(adminPages.SignOut))

	mux.HandleFunc("POST /api/auth/signin", authHandler.SignIn)
	mux.HandleFunc("POST /api/registrations", regHandler.Submit)
	mux.HandleFunc("GET /api/contact-info", contentHandler.ContactInfo)
	mux.HandleFunc("GET /api/gallery", contentHandler.Gallery)
	mux.Handle("GET /api/admin/registrations", admin(regHandler.List))
	mux.Handle("GET /api/admin/contact-messages", admin(contactHandler.ListMessages))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &site{
		server:        srv,
		auth:          authSvc,
		registrations: regSvc,
		contact:       contactSvc,
		gallery:       galleryRepo,
		achievements:  achievementRepo,
	}
}

// browser keeps cookies and stops at the first redirect.
func (s *site) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar:     jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *site) get(t *testing.T, c *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(s.server.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

// post submits form to path. Admin forms carry the token rendered into
// the page they are posted from.
func (s *site) post(t *testing.T, c *http.Client, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	if strings.HasPrefix(path, session.LoginRoute) {
		withToken := url.Values{}
		for k, v := range form {
			withToken[k] = v
		}
		withToken.Set(csrfField, s.formToken(t, c, path))
		form = withToken
	}
	resp, err := c.PostForm(s.server.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

const csrfField = "gorilla.csrf.Token"

var tokenInput = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

// formToken reads the form token from the admin page that posts to path.
// A signed-out visitor only sees the login page.
func (s *site) formToken(t *testing.T, c *http.Client, path string) string {
	t.Helper()
	pages := []string{session.DashboardRoute, session.LoginRoute}
	if path == session.LoginRoute {
		pages = pages[1:]
	}
	for _, page := range pages {
		_, body := s.get(t, c, page)
		if m := tokenInput.FindStringSubmatch(body); m != nil {
			return html.UnescapeString(m[1])
		}
	}
	t.Fatalf("no form token on %v", pages)
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func decodeEnvelope(t *testing.T, body string) pkg.APIResponse {
	t.Helper()
	var env pkg.APIResponse
	require.NoError(t, json.Unmarshal([]byte(body), &env), body)
	return env
}

// signedIn creates the first (admin) account and returns a browser holding
// its session cookies.
func (s *site) signedIn(t *testing.T) *http.Client {
	t.Helper()
	c := s.browser(t)

	resp, _ := s.post(t, c, "/admin", url.Values{
		"mode": {"signup"}, "full_name": {"Owner"}, "email": {"owner@example.com"}, "password": {"secret1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.post(t, c, "/admin", url.Values{
		"mode": {"signin"}, "email": {"owner@example.com"}, "password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, session.DashboardRoute, resp.Header.Get("Location"))
	return c
}

// ─── Public pages ───

func TestPublicPagesShowDefaults(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.browser(t)

	resp, body := s.get(t, c, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Students Taught")

	_, body = s.get(t, c, "/achievements")
	assert.Contains(t, body, "Priya Sharma")

	_, body = s.get(t, c, "/gallery?category=lab")
	assert.Contains(t, body, "default-image-")

	_, body = s.get(t, c, "/contact")
	assert.Contains(t, body, "info@tutorzindia.org")

	resp, _ = s.get(t, c, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInquirySubmit(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.browser(t)

	resp, body := s.post(t, c, "/inquiry", url.Values{"student_name": {"Asha Rao"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Phone is required")
	assert.Contains(t, body, `value="Asha Rao"`, "the entered values stay in the form")

	resp, body = s.post(t, c, "/inquiry", url.Values{
		"student_name": {"Asha Rao"}, "phone": {"9999999999"}, "email": {"asha@example.com"}, "class": {"Class 10"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Thank You for Registering!")

	regs, err := s.registrations.List(t.Context(), &models.User{ID: "admin", IsAdmin: true})
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Asha Rao", regs[0].StudentName)
	assert.Equal(t, "9999999999", regs[0].Phone)
	assert.Equal(t, "Class 10", regs[0].Class)
}

func TestListPagesFetchOncePerVisit(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.browser(t)

	for i, path := range []string{"/gallery", "/gallery?category=lab", "/gallery?image=default-image-1"} {
		resp, _ := s.get(t, c, path)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(i+1), s.gallery.lists.Load(), path)
	}
	assert.Zero(t, s.achievements.lists.Load())

	for i := range 2 {
		resp, body := s.get(t, c, "/achievements")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Priya Sharma", "defaults show while nothing is stored")
		assert.Equal(t, int32(i+1), s.achievements.lists.Load())
	}
	assert.Equal(t, int32(3), s.gallery.lists.Load())
}

func TestContactSubmitIsThrottled(t *testing.T) {
	limiter := ratelimit.NewSubmissionLimiter(time.Hour, 1, time.Hour)
	t.Cleanup(limiter.Stop)
	s := newSite(t, siteOptions{limiter: limiter})
	c := s.browser(t)

	form := url.Values{"name": {"Ravi"}, "email": {"ravi@example.com"}, "message": {"Hello"}}

	resp, body := s.post(t, c, "/contact", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Message Sent!")
	assert.NotContains(t, body, `value="Ravi"`, "a sent message clears the form")

	resp, body = s.post(t, c, "/contact", form)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Contains(t, body, `value="Ravi"`)
}

// ─── JSON API ───

func TestRegistrationAPI(t *testing.T) {
	s := newSite(t, siteOptions{})

	payload := `{"student_name":"Asha","phone":"98765","email":"asha@example.com","class":"Class 9"}`
	resp, err := http.Post(s.server.URL+"/api/registrations", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	env := decodeEnvelope(t, readBody(t, resp))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "submitted", env.Outcome)
	require.NotNil(t, env.Notification)
	assert.Equal(t, "Registration Successful!", env.Notification.Title)

	resp, err = http.Post(s.server.URL+"/api/registrations", "application/json", strings.NewReader(`{"student_name":"Asha"}`))
	require.NoError(t, err)
	env = decodeEnvelope(t, readBody(t, resp))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "destructive", env.Notification.Variant)
}

func TestContactInfoAPIFallsBack(t *testing.T) {
	s := newSite(t, siteOptions{})

	resp, err := http.Get(s.server.URL + "/api/contact-info")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "info@tutorzindia.org")
	assert.Contains(t, body, "https://wa.me/919876543210")
}

func TestAdminAPIRequiresAdmin(t *testing.T) {
	s := newSite(t, siteOptions{})
	ctx := t.Context()

	resp, err := http.Get(s.server.URL + "/api/admin/registrations")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, err = s.auth.SignUp(ctx, &models.SignUpRequest{FullName: "Owner", Email: "owner@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.auth.SignUp(ctx, &models.SignUpRequest{FullName: "Staff", Email: "staff@example.com", Password: "secret2"})
	require.NoError(t, err)

	call := func(email, password string) int {
		body, _ := json.Marshal(models.SignInRequest{Email: email, Password: password})
		resp, err := http.Post(s.server.URL+"/api/auth/signin", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		env := decodeEnvelope(t, readBody(t, resp))
		require.True(t, env.Success, env.Error)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var sess models.AuthSession
		require.NoError(t, json.Unmarshal(raw, &sess))

		req, err := http.NewRequest(http.MethodGet, s.server.URL+"/api/admin/registrations", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		readBody(t, resp)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusForbidden, call("staff@example.com", "secret2"))
	assert.Equal(t, http.StatusOK, call("owner@example.com", "secret1"))
}

// ─── Admin pages ───

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.browser(t)

	resp, _ := s.get(t, c, "/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, session.LoginRoute, resp.Header.Get("Location"))

	resp, _ = s.post(t, c, "/admin/dashboard/gallery", url.Values{"title": {"x"}, "image_url": {"/x.jpg"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, body := s.get(t, c, "/admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Admin Login")
}

func TestAdminSignInFlow(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.browser(t)

	resp, body := s.post(t, c, "/admin", url.Values{
		"mode": {"signup"}, "full_name": {"Owner"}, "email": {"owner@example.com"}, "password": {"abc"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Create Admin Account")
	assert.Contains(t, body, "Password must be at least 6 characters")

	resp, body = s.post(t, c, "/admin", url.Values{
		"mode": {"signup"}, "full_name": {"Owner"}, "email": {"owner@example.com"}, "password": {"secret1"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Registration Successful")
	assert.Contains(t, body, "Admin Login", "sign-up switches the page to sign-in")

	resp, body = s.post(t, c, "/admin", url.Values{
		"mode": {"signin"}, "email": {"owner@example.com"}, "password": {"wrong-one"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Login Failed")
	assert.Contains(t, body, `value="owner@example.com"`)

	resp, _ = s.post(t, c, "/admin", url.Values{
		"mode": {"signin"}, "email": {"owner@example.com"}, "password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, session.DashboardRoute, resp.Header.Get("Location"))

	resp, _ = s.get(t, c, "/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "a signed-in visitor skips the login page")
	assert.Equal(t, session.DashboardRoute, resp.Header.Get("Location"))

	resp, body = s.get(t, c, "/admin/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Signed in as owner@example.com")
	assert.Contains(t, body, "No registrations yet.")
	assert.Contains(t, body, `data-reload="/admin/dashboard?tab=registrations"`)

	resp, _ = s.post(t, c, "/admin/signout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, session.LoginRoute, resp.Header.Get("Location"))

	resp, _ = s.get(t, c, "/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminSignInIsRateLimited(t *testing.T) {
	loginLimiter := ratelimit.NewLoginRateLimiter(2, time.Minute)
	t.Cleanup(loginLimiter.Stop)
	s := newSite(t, siteOptions{loginLimiter: loginLimiter})
	c := s.browser(t)

	form := url.Values{"mode": {"signin"}, "email": {"owner@example.com"}, "password": {"wrong-one"}}
	for range 2 {
		resp, _ := s.post(t, c, "/admin", form)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, _ := s.post(t, c, "/admin", form)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestDashboardForms(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.signedIn(t)

	resp, body := s.post(t, c, "/admin/dashboard/gallery", url.Values{"title": {"Science Lab"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Image URL is required")
	assert.Contains(t, body, `value="Science Lab"`)

	resp, body = s.post(t, c, "/admin/dashboard/gallery", url.Values{
		"title": {"Science Lab"}, "image_url": {"/lab.jpg"}, "category": {"Lab"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Image added to gallery")
	assert.Contains(t, body, "/lab.jpg")

	_, body = s.get(t, c, "/gallery?category=Lab")
	assert.Contains(t, body, "Science Lab")
	assert.NotContains(t, body, "default-image-", "stored images replace the defaults")

	resp, body = s.post(t, c, "/admin/dashboard/achievements", url.Values{
		"student_name": {"Asha"}, "achievement": {"Olympiad Gold"}, "year": {"2024"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Achievement added")

	resp, body = s.post(t, c, "/admin/dashboard/settings", url.Values{
		"phone": {"+91 1111"}, "email": {"office@example.com"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Contact information updated")

	info := s.contact.GetInfo(t.Context())
	assert.Equal(t, "office@example.com", info.Email)
	assert.Equal(t, "123 Education Street, Knowledge City, India", info.Address)
}

func TestAdminFormsNeedToken(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.signedIn(t)

	resp, err := c.PostForm(s.server.URL+"/admin/dashboard/achievements", url.Values{
		"student_name": {"Asha Rao"}, "achievement": {"Olympiad Gold"},
	})
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = c.PostForm(s.server.URL+"/admin/dashboard/achievements", url.Values{
		"student_name": {"Asha Rao"}, "achievement": {"Olympiad Gold"}, csrfField: {"bogus"},
	})
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = c.PostForm(s.server.URL+"/admin/signout", nil)
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.get(t, c, "/admin/dashboard?tab=achievements")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a rejected sign-out keeps the session")
	assert.Contains(t, body, "No achievements yet.")

	resp, err = http.PostForm(s.server.URL+"/admin", url.Values{
		"mode": {"signin"}, "email": {"owner@example.com"}, "password": {"secret1"},
	})
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "a sign-in from another site has no cookie")
}

func TestDashboardExportCSV(t *testing.T) {
	s := newSite(t, siteOptions{})
	c := s.signedIn(t)

	_, err := s.registrations.Submit(t.Context(), &models.RegistrationRequest{
		StudentName: "Asha", Phone: "98765", Email: "asha@example.com", Class: "Class 10",
	})
	require.NoError(t, err)

	resp, body := s.get(t, c, "/admin/dashboard/registrations.csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `filename="?registrations_\d{4}-\d{2}-\d{2}\.csv`, resp.Header.Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Student Name,Email,Phone,Class,Registration Date", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "Asha,asha@example.com,98765,Class 10,"))
}
