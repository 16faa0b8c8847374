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

// RegistrationHandler serves the inquiry form and the admin registration list.
type RegistrationHandler struct {
	registrationService services.RegistrationService
	limiter             *ratelimit.SubmissionLimiter
}

// NewRegistrationHandler returns the handler. limiter may be nil.
func NewRegistrationHandler(registrationService services.RegistrationService, limiter *ratelimit.SubmissionLimiter) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService, limiter: limiter}
}

// registrationOptions configures the inquiry form: a successful submit
// swaps the form for the confirmation view.
var registrationOptions = gateway.Options{
	Name:          "registration",
	Success:       gateway.OutcomeSubmitted,
	SuccessStatus: http.StatusCreated,
	Messages: gateway.Messages{
		SuccessTitle:       "registration.success.title",
		SuccessDescription: "registration.success.description",
		Failure:            "registration.failed",
	},
}

// Submit godoc
// POST /api/registrations
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if n := throttle(w, r, h.limiter); n != nil {
		writeThrottled(w, n)
		return
	}

	var req models.RegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var reg *models.Registration
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		reg, err = h.registrationService.Submit(ctx, &req)
		return err
	}, registrationOptions)

	res.Write(w, reg)
}

// List godoc
// GET /api/admin/registrations
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrationService.List(r.Context(), userFrom(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, regs)
}

// ExportCSV godoc
// GET /api/admin/registrations/export.csv
//
// Dates use the short date format of the request's Accept-Language.
func (h *RegistrationHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.registrationService.ExportCSV(r.Context(), userFrom(r), r.Header.Get("Accept-Language"))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	writeDownload(w, h.registrationService.ExportName("csv"), "text/csv; charset=utf-8", data)
}

// ExportXLSX godoc
// GET /api/admin/registrations/export.xlsx
func (h *RegistrationHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.registrationService.ExportXLSX(r.Context(), userFrom(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	writeDownload(w, h.registrationService.ExportName("xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func writeDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
