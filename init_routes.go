package main

import (
	"net/http"

	"github.com/tutorzindia/site/config"
	"github.com/tutorzindia/site/middleware"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
	"github.com/tutorzindia/site/static"
)

// initRoutes binds every page, API endpoint and asset to mux.
//
// Chain helpers:
//   - authAdmin: access token + admin flag, for the admin JSON API
//   - loginPage / dashboardPage: form token check, then the session guard
//     of an admin page
func initRoutes(mux *http.ServeMux, h *Handlers, authService services.AuthService, cfg *config.Config) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService)
	adminMw := middleware.NewAdminMiddleware()
	pageGuard := middleware.NewPageGuard(authService, cfg.Cookie.Secure)
	csrfMw := middleware.NewCSRF(cfg.Cookie.CSRFKey, cfg.Cookie.Secure)

	// ─── Middleware Chain Helpers ───
	authAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(adminMw.Require(handler))
	}
	loginPage := func(handler http.HandlerFunc) http.Handler {
		return csrfMw.Require(pageGuard.Guard(session.LoginPage, handler))
	}
	dashboardPage := func(handler http.HandlerFunc) http.Handler {
		return csrfMw.Require(pageGuard.Guard(session.DashboardPage, handler))
	}

	// ─── Public pages ───
	mux.HandleFunc("GET /{$}", h.Pages.Home)
	mux.HandleFunc("GET /about", h.Pages.About)
	mux.HandleFunc("GET /achievements", h.Pages.Achievements)
	mux.HandleFunc("GET /gallery", h.Pages.Gallery)
	mux.HandleFunc("GET /contact", h.Pages.Contact)
	mux.HandleFunc("POST /contact", h.Pages.ContactSubmit)
	mux.HandleFunc("GET /inquiry", h.Pages.Inquiry)
	mux.HandleFunc("POST /inquiry", h.Pages.InquirySubmit)

	// ─── Admin pages ───
	mux.Handle("GET /admin", loginPage(h.AdminPages.Login))
	mux.Handle("POST /admin", loginPage(h.AdminPages.LoginSubmit))
	mux.Handle("GET /admin/dashboard", dashboardPage(h.AdminPages.Dashboard))
	mux.Handle("POST /admin/dashboard/gallery", dashboardPage(h.AdminPages.AddGalleryImage))
	// The form token is read from the multipart body, so the body is capped
	// before it is parsed.
	mux.Handle("POST /admin/dashboard/gallery/upload", http.MaxBytesHandler(
		dashboardPage(h.AdminPages.UploadGalleryImage), cfg.Storage.MaxUploadSize+1<<20))
	mux.Handle("POST /admin/dashboard/achievements", dashboardPage(h.AdminPages.AddAchievement))
	mux.Handle("POST /admin/dashboard/settings", dashboardPage(h.AdminPages.UpdateSettings))
	mux.Handle("GET /admin/dashboard/registrations.csv", dashboardPage(h.AdminPages.ExportCSV))
	mux.Handle("GET /admin/dashboard/registrations.xlsx", dashboardPage(h.AdminPages.ExportXLSX))
	mux.Handle("POST /admin/signout", dashboardPage(h.AdminPages.SignOut))

	// ─── Public API ───
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "tutorzindia"})
	})
	mux.HandleFunc("GET /api/achievements", h.Content.Achievements)
	mux.HandleFunc("GET /api/gallery", h.Content.Gallery)
	mux.HandleFunc("GET /api/contact-info", h.Content.ContactInfo)
	mux.HandleFunc("POST /api/registrations", h.Registration.Submit)
	mux.HandleFunc("POST /api/contact-messages", h.Contact.SendMessage)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", h.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/signin", h.Auth.SignIn)
	mux.HandleFunc("POST /api/auth/signout", h.Auth.SignOut)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("GET /api/auth/session", h.Auth.Session)

	// ─── Admin API ───
	mux.Handle("GET /api/admin/registrations", authAdmin(h.Registration.List))
	mux.Handle("GET /api/admin/registrations/export.csv", authAdmin(h.Registration.ExportCSV))
	mux.Handle("GET /api/admin/registrations/export.xlsx", authAdmin(h.Registration.ExportXLSX))
	mux.Handle("GET /api/admin/gallery", authAdmin(h.Gallery.List))
	mux.Handle("POST /api/admin/gallery", authAdmin(h.Gallery.Create))
	mux.Handle("POST /api/admin/gallery/upload", authAdmin(h.Gallery.Upload))
	mux.Handle("GET /api/admin/achievements", authAdmin(h.Achievement.List))
	mux.Handle("POST /api/admin/achievements", authAdmin(h.Achievement.Create))
	mux.Handle("GET /api/admin/contact-info", authAdmin(h.Contact.GetInfo))
	mux.Handle("PUT /api/admin/contact-info", authAdmin(h.Contact.UpdateInfo))
	mux.Handle("GET /api/admin/contact-messages", authAdmin(h.Contact.ListMessages))

	// ─── Assets, WebSocket, fallback ───
	mux.Handle("GET /static/", http.StripPrefix("/static/", static.Handler()))
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
	mux.HandleFunc("/", h.Pages.NotFound)
}
