package handlers

import (
	"context"
	"net/http"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/gateway"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/services"
)

// ContactHandler serves the contact form and the contact settings.
type ContactHandler struct {
	contactService services.ContactService
	limiter        *ratelimit.SubmissionLimiter
}

// NewContactHandler returns the handler. limiter may be nil.
func NewContactHandler(contactService services.ContactService, limiter *ratelimit.SubmissionLimiter) *ContactHandler {
	return &ContactHandler{contactService: contactService, limiter: limiter}
}

var contactMessageOptions = gateway.Options{
	Name:          "contact",
	Success:       gateway.OutcomeReset,
	SuccessStatus: http.StatusCreated,
	Messages: gateway.Messages{
		SuccessTitle:       "contact.success.title",
		SuccessDescription: "contact.success.description",
		Failure:            "contact.failed",
	},
}

// The settings form keeps its values after saving.
var contactInfoOptions = gateway.Options{
	Name:    "contact_info",
	Success: gateway.OutcomeStay,
	Messages: gateway.Messages{
		SuccessTitle: "contactInfo.updated",
		Failure:      "contactInfo.failed",
	},
}

// SendMessage godoc
// POST /api/contact-messages
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if n := throttle(w, r, h.limiter); n != nil {
		writeThrottled(w, n)
		return
	}

	var req models.ContactMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var msg *models.ContactMessage
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		msg, err = h.contactService.SendMessage(ctx, &req)
		return err
	}, contactMessageOptions)

	res.Write(w, msg)
}

// GetInfo godoc
// GET /api/admin/contact-info
//
// Returns the stored row without defaults, as the settings form edits it.
func (h *ContactHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.contactService.GetStoredInfo(r.Context(), userFrom(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, info)
}

// UpdateInfo godoc
// PUT /api/admin/contact-info
func (h *ContactHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	var req models.ContactInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var info *models.ContactInfo
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		info, err = h.contactService.UpdateInfo(ctx, userFrom(r), &req)
		return err
	}, contactInfoOptions)

	res.Write(w, info)
}

// ListMessages godoc
// GET /api/admin/contact-messages
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.contactService.ListMessages(r.Context(), userFrom(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, msgs)
}
