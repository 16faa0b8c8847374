package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/gateway"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/web"
)

// PageHandler renders the public pages and handles their forms.
//
// Every list page loads its collection exactly once per visit through the
// services' loaders, so a failed or empty read shows the default content.
type PageHandler struct {
	renderer            *web.Renderer
	registrationService services.RegistrationService
	galleryService      services.GalleryService
	achievementService  services.AchievementService
	contactService      services.ContactService
	limiter             *ratelimit.SubmissionLimiter
}

// NewPageHandler returns the public page handler. limiter may be nil.
func NewPageHandler(
	renderer *web.Renderer,
	registrationService services.RegistrationService,
	galleryService services.GalleryService,
	achievementService services.AchievementService,
	contactService services.ContactService,
	limiter *ratelimit.SubmissionLimiter,
) *PageHandler {
	return &PageHandler{
		renderer:            renderer,
		registrationService: registrationService,
		galleryService:      galleryService,
		achievementService:  achievementService,
		contactService:      contactService,
		limiter:             limiter,
	}
}

func newView(r *http.Request, title string, data any) *web.View {
	return &web.View{
		Title: title,
		Path:  r.URL.Path,
		Lang:  i18n.FromRequest(r).Lang(),
		Data:  data,
	}
}

// Home godoc
// GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, web.PageHome, newView(r, "Home", web.HomeData{
		Stats:    web.HomeStats,
		Features: web.Features,
		Courses:  web.Courses,
	}))
}

// About godoc
// GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, web.PageAbout, newView(r, "About", web.AboutData{
		Values:   web.Values,
		Timeline: web.Timeline,
		Team:     web.Team,
	}))
}

// Achievements godoc
// GET /achievements
func (h *PageHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	loaded := h.achievementService.ListPublic(r.Context())
	h.renderer.Render(w, http.StatusOK, web.PageAchievements, newView(r, "Achievements", web.AchievementsData{
		Items: loaded.Items,
		Stats: web.AchievementStats,
	}))
}

// Gallery godoc
// GET /gallery?category=Classroom&image=<id>
//
// category selects a filter button (All when missing); image opens that
// image in the lightbox.
func (h *PageHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	selected := canonicalCategory(r.URL.Query().Get("category"))
	loaded := h.galleryService.ListPublic(r.Context(), selected)

	data := web.GalleryData{
		Images:     loaded.Items,
		Categories: models.GalleryCategories,
		Selected:   selected,
	}
	if id := r.URL.Query().Get("image"); id != "" {
		for i := range loaded.Items {
			if loaded.Items[i].ID == id {
				data.Open = &loaded.Items[i]
				break
			}
		}
	}

	h.renderer.Render(w, http.StatusOK, web.PageGallery, newView(r, "Gallery", data))
}

// canonicalCategory maps a category query to its filter button label.
// Unknown categories are kept as given.
func canonicalCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.CategoryAll
	}
	for _, c := range models.GalleryCategories {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return category
}

// Contact godoc
// GET /contact
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, http.StatusOK, models.ContactMessageRequest{}, nil)
}

// ContactSubmit godoc
// POST /contact
func (h *PageHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactMessageRequest
	if err := decodeForm(r, &req); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if n := throttle(w, r, h.limiter); n != nil {
		h.renderContact(w, r, http.StatusTooManyRequests, req, n)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := h.contactService.SendMessage(ctx, &req)
		return err
	}, contactMessageOptions)

	if res.Outcome == gateway.OutcomeReset {
		req = models.ContactMessageRequest{}
	}
	h.renderContact(w, r, pageStatus(res), req, &res.Notification)
}

func (h *PageHandler) renderContact(w http.ResponseWriter, r *http.Request, status int, form models.ContactMessageRequest, n *pkg.Notification) {
	view := newView(r, "Contact", web.ContactData{
		Info: h.contactService.GetInfo(r.Context()),
		Form: form,
	})
	view.Notification = n
	h.renderer.Render(w, status, web.PageContact, view)
}

// Inquiry godoc
// GET /inquiry
func (h *PageHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	h.renderInquiry(w, r, http.StatusOK, web.InquiryData{}, nil)
}

// InquirySubmit godoc
// POST /inquiry
//
// A stored registration swaps the form for the confirmation view; any
// failure keeps the entered values for another try.
func (h *PageHandler) InquirySubmit(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := decodeForm(r, &req); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if n := throttle(w, r, h.limiter); n != nil {
		h.renderInquiry(w, r, http.StatusTooManyRequests, web.InquiryData{Form: req}, n)
		return
	}

	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		_, err := h.registrationService.Submit(ctx, &req)
		return err
	}, registrationOptions)

	data := web.InquiryData{Form: req}
	if res.Outcome == gateway.OutcomeSubmitted {
		data = web.InquiryData{Submitted: true}
	}
	h.renderInquiry(w, r, pageStatus(res), data, &res.Notification)
}

func (h *PageHandler) renderInquiry(w http.ResponseWriter, r *http.Request, status int, data web.InquiryData, n *pkg.Notification) {
	data.Classes = models.ClassOptions
	data.Subjects = models.SubjectOptions

	view := newView(r, "Admission Inquiry", data)
	view.Notification = n
	h.renderer.Render(w, status, web.PageInquiry, view)
}

// NotFound godoc
// Any unmatched path.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusNotFound, web.PageNotFound, newView(r, "Page Not Found", nil))
}

// pageStatus is the status of a page rendered after a form submit: 200 on
// success, the failure's status otherwise.
func pageStatus(res gateway.Result) int {
	if res.OK {
		return http.StatusOK
	}
	return res.Status
}
