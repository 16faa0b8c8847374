package handlers

import (
	"net/http"

	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/services"
)

// ContentHandler serves the public collections as JSON. Like the pages,
// every response falls back to the default content instead of failing.
type ContentHandler struct {
	galleryService     services.GalleryService
	achievementService services.AchievementService
	contactService     services.ContactService
}

// NewContentHandler returns the public content handler.
func NewContentHandler(
	galleryService services.GalleryService,
	achievementService services.AchievementService,
	contactService services.ContactService,
) *ContentHandler {
	return &ContentHandler{
		galleryService:     galleryService,
		achievementService: achievementService,
		contactService:     contactService,
	}
}

// Achievements godoc
// GET /api/achievements
func (h *ContentHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.achievementService.ListPublic(r.Context()))
}

// Gallery godoc
// GET /api/gallery?category=Classroom
func (h *ContentHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	pkg.JSON(w, http.StatusOK, h.galleryService.ListPublic(r.Context(), category))
}

// ContactInfo godoc
// GET /api/contact-info
func (h *ContentHandler) ContactInfo(w http.ResponseWriter, r *http.Request) {
	info := h.contactService.GetInfo(r.Context())
	pkg.JSON(w, http.StatusOK, map[string]any{
		"contact_info":  info,
		"whatsapp_link": info.WhatsAppLink(),
	})
}
