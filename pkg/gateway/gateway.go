// Package gateway runs a form through validation and a single backend call
// and turns the result into the notification and next step the page shows.
//
//	res := gateway.Submit(ctx, loc, &req, func(ctx context.Context) error {
//		return registrations.Submit(ctx, &req)
//	}, gateway.Options{
//		Name:    "registration",
//		Success: gateway.OutcomeSubmitted,
//		Messages: gateway.Messages{
//			SuccessTitle:       "registration.success.title",
//			SuccessDescription: "registration.success.description",
//			Failure:            "registration.failed",
//		},
//	})
//
// A form that fails validation never reaches the call. A failed call keeps
// the form for another try; nothing is retried automatically.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/i18n"
)

// Form is a record with its required fields declared up front.
type Form interface {
	Validate() error
}

// Call is the one create or update the form submits.
type Call func(ctx context.Context) error

// Outcome tells the page what to do after a successful submit.
type Outcome string

const (
	// OutcomeStay keeps the form as it is.
	OutcomeStay Outcome = ""
	// OutcomeReset clears the form.
	OutcomeReset Outcome = "reset"
	// OutcomeSubmitted swaps the form for a confirmation view.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeRedirect navigates to Result.Redirect.
	OutcomeRedirect Outcome = "redirect"
)

// Messages are i18n keys for the notifications of one form.
type Messages struct {
	SuccessTitle       string
	SuccessDescription string
	// FailureTitle defaults to "notify.error".
	FailureTitle string
	// Failure is shown when the backend error carries no public message.
	// Defaults to "notify.genericError".
	Failure string
}

// Options configure one form.
type Options struct {
	// Name labels log lines.
	Name     string
	Success  Outcome
	Redirect string
	// SuccessStatus is the HTTP status of a successful submit, 200 by default.
	SuccessStatus int
	Messages      Messages
}

// Result is what the page needs after a submit.
type Result struct {
	OK bool
	// Called reports whether the backend call ran.
	Called       bool
	Err          error
	Status       int
	Notification pkg.Notification
	Outcome      Outcome
	Redirect     string
}

// Submit validates form, runs call once if it is valid and maps the result.
func Submit(ctx context.Context, loc *i18n.Localizer, form Form, call Call, opts Options) Result {
	if err := form.Validate(); err != nil {
		return Result{
			Err:    fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error()),
			Status: http.StatusBadRequest,
			Notification: pkg.Notification{
				Title:       loc.T(orDefault(opts.Messages.FailureTitle, "notify.error")),
				Description: err.Error(),
				Variant:     pkg.VariantDestructive,
			},
		}
	}

	if err := call(ctx); err != nil {
		log.Printf("[gateway] %s submit failed: %v", opts.Name, err)

		desc := pkg.PublicMessage(err)
		if desc == "" {
			desc = loc.T(orDefault(opts.Messages.Failure, "notify.genericError"))
		}
		return Result{
			Called: true,
			Err:    err,
			Status: pkg.StatusOf(err),
			Notification: pkg.Notification{
				Title:       loc.T(orDefault(opts.Messages.FailureTitle, "notify.error")),
				Description: desc,
				Variant:     pkg.VariantDestructive,
			},
		}
	}

	status := opts.SuccessStatus
	if status == 0 {
		status = http.StatusOK
	}

	res := Result{
		OK:      true,
		Called:  true,
		Status:  status,
		Outcome: opts.Success,
		Notification: pkg.Notification{
			Title: loc.T(opts.Messages.SuccessTitle),
		},
	}
	if opts.Messages.SuccessDescription != "" {
		res.Notification.Description = loc.T(opts.Messages.SuccessDescription)
	}
	if opts.Success == OutcomeRedirect {
		res.Redirect = opts.Redirect
	}
	return res
}

// Envelope converts the result into the JSON response body.
func (r Result) Envelope(data any) pkg.APIResponse {
	resp := pkg.APIResponse{
		Success:      r.OK,
		Notification: &r.Notification,
		Outcome:      string(r.Outcome),
		Redirect:     r.Redirect,
	}
	if r.OK {
		resp.Data = data
	} else if r.Err != nil {
		resp.Error = r.Notification.Description
	}
	return resp
}

// Write sends the result as JSON.
func (r Result) Write(w http.ResponseWriter, data any) {
	pkg.Envelope(w, r.Status, r.Envelope(data))
}

func orDefault(key, def string) string {
	if key == "" {
		return def
	}
	return key
}
