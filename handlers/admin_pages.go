package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/gateway"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
	"github.com/tutorzindia/site/web"
)

// AdminPageHandler renders the admin login page and the dashboard. Every
// route runs behind middleware.PageGuard, which provides the AdminPage.
//
// Forms on these pages never navigate on their own after signing in or out.
// They follow the destination the page's guard picked when the session
// changed.
type AdminPageHandler struct {
	renderer            *web.Renderer
	registrationService services.RegistrationService
	galleryService      services.GalleryService
	achievementService  services.AchievementService
	contactService      services.ContactService
	loginLimiter        *ratelimit.LoginRateLimiter
	uploadsEnabled      bool
	maxUploadSize       int64
	secureCookies       bool
}

// AdminPageConfig carries the settings of the admin pages.
type AdminPageConfig struct {
	UploadsEnabled bool
	MaxUploadSize  int64
	SecureCookies  bool
}

// NewAdminPageHandler returns the admin page handler. loginLimiter may be nil.
func NewAdminPageHandler(
	renderer *web.Renderer,
	registrationService services.RegistrationService,
	galleryService services.GalleryService,
	achievementService services.AchievementService,
	contactService services.ContactService,
	loginLimiter *ratelimit.LoginRateLimiter,
	cfg AdminPageConfig,
) *AdminPageHandler {
	return &AdminPageHandler{
		renderer:            renderer,
		registrationService: registrationService,
		galleryService:      galleryService,
		achievementService:  achievementService,
		contactService:      contactService,
		loginLimiter:        loginLimiter,
		uploadsEnabled:      cfg.UploadsEnabled,
		maxUploadSize:       cfg.MaxUploadSize,
		secureCookies:       cfg.SecureCookies,
	}
}

// tabCollections maps each dashboard tab to the collection it lists.
var tabCollections = map[string]string{
	web.TabRegistrations: services.CollectionRegistrations,
	web.TabGallery:       services.CollectionGalleryImages,
	web.TabAchievements:  services.CollectionAchievements,
	web.TabMessages:      services.CollectionContactMessages,
	web.TabSettings:      services.CollectionContactInfo,
}

// ─── Login ───

// Login godoc
// GET /admin[?mode=signup]
func (h *AdminPageHandler) Login(w http.ResponseWriter, r *http.Request) {
	mode := web.ModeSignIn
	if r.URL.Query().Get("mode") == web.ModeSignUp {
		mode = web.ModeSignUp
	}
	h.renderLogin(w, r, http.StatusOK, web.LoginData{Mode: mode}, nil)
}

// LoginSubmit godoc
// POST /admin (form field mode=signin|signup)
func (h *AdminPageHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	if page == nil {
		http.Error(w, "admin page not guarded", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if r.PostFormValue("mode") == web.ModeSignUp {
		h.signUp(w, r, page)
		return
	}
	h.signIn(w, r, page)
}

func (h *AdminPageHandler) signIn(w http.ResponseWriter, r *http.Request, page *AdminPage) {
	var req models.SignInRequest
	if err := decodeForm(r, &req); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := web.LoginData{Mode: web.ModeSignIn, Email: req.Email}

	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		n := loginThrottled(w, r, h.loginLimiter, ip)
		h.renderLogin(w, r, http.StatusTooManyRequests, data, n)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := page.Client.SignIn(ctx, &req)
		return err
	}, signInOptions)

	if !res.OK {
		h.renderLogin(w, r, res.Status, data, &res.Notification)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}
	session.SetCookies(w, page.Client.Session(), h.secureCookies)

	if dest := page.Guard.Destination(); dest != "" {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, data, &res.Notification)
}

// signUp creates the account and switches the page to sign-in mode. The
// new account signs in separately, so the guard does not move.
func (h *AdminPageHandler) signUp(w http.ResponseWriter, r *http.Request, page *AdminPage) {
	var req models.SignUpRequest
	if err := decodeForm(r, &req); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := page.Client.SignUp(ctx, &req)
		return err
	}, signUpOptions)

	if !res.OK {
		h.renderLogin(w, r, res.Status, web.LoginData{Mode: web.ModeSignUp, Email: req.Email, FullName: req.FullName}, &res.Notification)
		return
	}
	h.renderLogin(w, r, http.StatusOK, web.LoginData{Mode: web.ModeSignIn, Email: req.Email}, &res.Notification)
}

func (h *AdminPageHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data web.LoginData, n *pkg.Notification) {
	view := newView(r, "Admin Login", data)
	view.AdminPage = string(session.LoginPage)
	view.CSRFToken = csrf.Token(r)
	view.Notification = n
	h.renderer.Render(w, status, web.PageAdminLogin, view)
}

// SignOut godoc
// POST /admin/signout
func (h *AdminPageHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	if page == nil {
		http.Error(w, "admin page not guarded", http.StatusInternalServerError)
		return
	}

	if err := page.Client.SignOut(r.Context()); err != nil {
		log.Printf("[admin] sign out failed: %v", err)
		loc := i18n.FromRequest(r)
		h.renderDashboard(w, r, page, http.StatusInternalServerError, web.DashboardData{Tab: web.TabRegistrations}, &pkg.Notification{
			Title:       loc.T("notify.error"),
			Description: loc.T("notify.genericError"),
			Variant:     pkg.VariantDestructive,
		})
		return
	}

	session.ClearCookies(w, h.secureCookies)

	dest := page.Guard.Destination()
	if dest == "" {
		dest = session.LoginRoute
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// ─── Dashboard ───

// Dashboard godoc
// GET /admin/dashboard?tab=registrations|gallery|achievements|messages|settings
func (h *AdminPageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	if page == nil {
		http.Error(w, "admin page not guarded", http.StatusInternalServerError)
		return
	}

	tab := r.URL.Query().Get("tab")
	if !web.IsDashboardTab(tab) {
		tab = web.DashboardTabs[0]
	}
	h.renderDashboard(w, r, page, http.StatusOK, web.DashboardData{Tab: tab}, nil)
}

// AddGalleryImage godoc
// POST /admin/dashboard/gallery
func (h *AdminPageHandler) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	var req models.GalleryImageRequest
	if page == nil || decodeForm(r, &req) != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := h.galleryService.Create(ctx, page.Actor(), &req)
		return err
	}, galleryImageOptions)

	data := web.DashboardData{Tab: web.TabGallery, GalleryForm: req}
	if res.Outcome == gateway.OutcomeReset {
		data.GalleryForm = models.GalleryImageRequest{}
	}
	h.renderDashboard(w, r, page, pageStatus(res), data, &res.Notification)
}

// UploadGalleryImage godoc
// POST /admin/dashboard/gallery/upload (multipart: title, category, file)
//
// Stores the file, then adds it to the gallery like AddGalleryImage.
func (h *AdminPageHandler) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	if page == nil {
		http.Error(w, "admin page not guarded", http.StatusInternalServerError)
		return
	}

	file, err := readUpload(w, r, h.maxUploadSize)
	if err != nil {
		h.renderDashboard(w, r, page, http.StatusBadRequest, web.DashboardData{Tab: web.TabGallery},
			failureNotice(r, "gallery.failed", err.Error()))
		return
	}
	defer file.close()

	req := models.GalleryImageRequest{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Category: strings.TrimSpace(r.FormValue("category")),
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &uploadForm{&req}, func(ctx context.Context) error {
		url, err := h.galleryService.Upload(ctx, page.Actor(), file.UploadFile)
		if err != nil {
			return err
		}
		req.ImageURL = url
		_, err = h.galleryService.Create(ctx, page.Actor(), &req)
		return err
	}, gateway.Options{
		Name:    "gallery_upload",
		Success: gateway.OutcomeReset,
		Messages: gateway.Messages{
			SuccessTitle: "gallery.uploaded",
			Failure:      "gallery.failed",
		},
	})

	h.renderDashboard(w, r, page, pageStatus(res), web.DashboardData{Tab: web.TabGallery}, &res.Notification)
}

// uploadForm checks the fields of an upload before the file is stored; the
// image URL only exists afterwards.
type uploadForm struct {
	req *models.GalleryImageRequest
}

func (f *uploadForm) Validate() error {
	if f.req.Title == "" {
		return errors.New("Title is required")
	}
	return nil
}

// AddAchievement godoc
// POST /admin/dashboard/achievements
func (h *AdminPageHandler) AddAchievement(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	var req models.AchievementRequest
	if page == nil || decodeForm(r, &req) != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := h.achievementService.Create(ctx, page.Actor(), &req)
		return err
	}, achievementOptions)

	data := web.DashboardData{Tab: web.TabAchievements, AchievementForm: req}
	if res.Outcome == gateway.OutcomeReset {
		data.AchievementForm = models.AchievementRequest{}
	}
	h.renderDashboard(w, r, page, pageStatus(res), data, &res.Notification)
}

// UpdateSettings godoc
// POST /admin/dashboard/settings
func (h *AdminPageHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	var req models.ContactInfoRequest
	if page == nil || decodeForm(r, &req) != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := h.contactService.UpdateInfo(ctx, page.Actor(), &req)
		return err
	}, contactInfoOptions)

	data := web.DashboardData{Tab: web.TabSettings, Settings: req}
	h.renderDashboard(w, r, page, pageStatus(res), data, &res.Notification)
}

// ExportCSV godoc
// GET /admin/dashboard/registrations.csv
func (h *AdminPageHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	if page == nil {
		http.Error(w, "admin page not guarded", http.StatusInternalServerError)
		return
	}

	data, err := h.registrationService.ExportCSV(r.Context(), page.Actor(), r.Header.Get("Accept-Language"))
	if err != nil {
		h.renderDashboard(w, r, page, pkg.StatusOf(err), web.DashboardData{Tab: web.TabRegistrations},
			failureNotice(r, "notify.genericError", pkg.PublicMessage(err)))
		return
	}
	writeDownload(w, h.registrationService.ExportName("csv"), "text/csv; charset=utf-8", data)
}

// ExportXLSX godoc
// GET /admin/dashboard/registrations.xlsx
func (h *AdminPageHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	page := adminPageFrom(r)
	if page == nil {
		http.Error(w, "admin page not guarded", http.StatusInternalServerError)
		return
	}

	data, err := h.registrationService.ExportXLSX(r.Context(), page.Actor())
	if err != nil {
		h.renderDashboard(w, r, page, pkg.StatusOf(err), web.DashboardData{Tab: web.TabRegistrations},
			failureNotice(r, "notify.genericError", pkg.PublicMessage(err)))
		return
	}
	writeDownload(w, h.registrationService.ExportName("xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// renderDashboard loads the data of data.Tab and renders the dashboard. A
// load failure is shown as a notification unless n already holds one.
func (h *AdminPageHandler) renderDashboard(w http.ResponseWriter, r *http.Request, page *AdminPage, status int, data web.DashboardData, n *pkg.Notification) {
	ctx := r.Context()
	actor := page.Actor()
	if actor != nil {
		data.Admin = *actor
	}
	data.Tabs = web.DashboardTabs
	data.Categories = models.GalleryCategories[1:]
	data.UploadEnabled = h.uploadsEnabled

	if count, err := h.registrationService.Count(ctx, actor); err == nil {
		data.RegistrationCount = count
	}

	var err error
	switch data.Tab {
	case web.TabRegistrations:
		data.Registrations, err = h.registrationService.List(ctx, actor)
	case web.TabGallery:
		data.Gallery, err = h.galleryService.List(ctx, actor)
	case web.TabAchievements:
		data.Achievements, err = h.achievementService.List(ctx, actor)
	case web.TabMessages:
		data.Messages, err = h.contactService.ListMessages(ctx, actor)
	case web.TabSettings:
		if data.Settings == (models.ContactInfoRequest{}) {
			var info *models.ContactInfo
			info, err = h.contactService.GetStoredInfo(ctx, actor)
			if err == nil {
				data.Settings = models.ContactInfoRequest{
					Phone:    info.Phone,
					Email:    info.Email,
					Address:  info.Address,
					WhatsApp: info.WhatsApp,
				}
			} else if errors.Is(err, pkg.ErrNotFound) {
				err = nil
			}
		}
	}
	if err != nil {
		log.Printf("[admin] failed to load %s tab: %v", data.Tab, err)
		if n == nil {
			n = failureNotice(r, "notify.genericError", pkg.PublicMessage(err))
			if status == http.StatusOK {
				status = pkg.StatusOf(err)
			}
		}
	}

	view := newView(r, "Admin Dashboard", data)
	view.AdminPage = string(session.DashboardPage)
	view.Collection = tabCollections[data.Tab]
	view.ReloadURL = session.DashboardRoute + "?tab=" + data.Tab
	view.CSRFToken = csrf.Token(r)
	view.Notification = n
	h.renderer.Render(w, status, web.PageDashboard, view)
}

// failureNotice is a destructive notification with description, or the
// text of fallbackKey when description is empty.
func failureNotice(r *http.Request, fallbackKey, description string) *pkg.Notification {
	loc := i18n.FromRequest(r)
	if description == "" {
		description = loc.T(fallbackKey)
	}
	return &pkg.Notification{
		Title:       loc.T("notify.error"),
		Description: description,
		Variant:     pkg.VariantDestructive,
	}
}
