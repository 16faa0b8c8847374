package handlers

import (
	"context"
	"net/http"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/gateway"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/services"
)

// GalleryHandler serves the admin gallery endpoints.
type GalleryHandler struct {
	galleryService services.GalleryService
	maxUploadSize  int64
}

// NewGalleryHandler returns the handler. maxUploadSize bounds the multipart
// body of uploads.
func NewGalleryHandler(galleryService services.GalleryService, maxUploadSize int64) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, maxUploadSize: maxUploadSize}
}

var galleryImageOptions = gateway.Options{
	Name:          "gallery_image",
	Success:       gateway.OutcomeReset,
	SuccessStatus: http.StatusCreated,
	Messages: gateway.Messages{
		SuccessTitle: "gallery.added",
		Failure:      "gallery.failed",
	},
}

// List godoc
// GET /api/admin/gallery
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.galleryService.List(r.Context(), userFrom(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, images)
}

// Create godoc
// POST /api/admin/gallery
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GalleryImageRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var img *models.GalleryImage
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		img, err = h.galleryService.Create(ctx, userFrom(r), &req)
		return err
	}, galleryImageOptions)

	res.Write(w, img)
}

// Upload godoc
// POST /api/admin/gallery/upload (multipart, field "file")
//
// Stores the file and returns its URL; the image is added to the gallery
// with a separate Create call.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, err := readUpload(w, r, h.maxUploadSize)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.close()

	url, err := h.galleryService.Upload(r.Context(), userFrom(r), file.UploadFile)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]string{"url": url})
}
