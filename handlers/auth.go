package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/gateway"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/session"
)

// AuthHandler serves the auth provider endpoints.
//
// Sign-in answers with the session and sets the session cookies but never a
// redirect: the open admin tabs move when their guards see the SIGNED_IN
// event pushed over /ws.
type AuthHandler struct {
	authService   services.AuthService
	loginLimiter  *ratelimit.LoginRateLimiter
	secureCookies bool
}

// NewAuthHandler returns the handler. loginLimiter may be nil.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		loginLimiter:  loginLimiter,
		secureCookies: secureCookies,
	}
}

var signInOptions = gateway.Options{
	Name:    "sign_in",
	Success: gateway.OutcomeStay,
	Messages: gateway.Messages{
		SuccessTitle:       "auth.signIn.success",
		SuccessDescription: "auth.signIn.welcome",
		FailureTitle:       "auth.signIn.failed",
		Failure:            "auth.invalidCredentials",
	},
}

var signUpOptions = gateway.Options{
	Name:          "sign_up",
	Success:       gateway.OutcomeStay,
	SuccessStatus: http.StatusCreated,
	Messages: gateway.Messages{
		SuccessTitle:       "auth.signUp.success",
		SuccessDescription: "auth.signUp.checkEmail",
		FailureTitle:       "auth.signUp.failed",
	},
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SignUp godoc
// POST /api/auth/signup
// The first account becomes the admin.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var user *models.User
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		user, err = h.authService.SignUp(ctx, &req)
		return err
	}, signUpOptions)

	res.Write(w, user)
}

// SignIn godoc
// POST /api/auth/signin
//
// Failed attempts are counted per IP; a successful one resets the count.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		writeThrottled(w, loginThrottled(w, r, h.loginLimiter, ip))
		return
	}

	var req models.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var sess *models.AuthSession
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		sess, err = h.authService.SignIn(ctx, &req)
		return err
	}, signInOptions)

	if res.OK {
		if h.loginLimiter != nil {
			h.loginLimiter.Reset(ip)
		}
		session.SetCookies(w, sess, h.secureCookies)
	}
	res.Write(w, sess)
}

// SignOut godoc
// POST /api/auth/signout
// Body (optional): { "refresh_token": "..." }; the refresh cookie is used otherwise.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = session.RefreshToken(r)
	}

	if err := h.authService.SignOut(r.Context(), req.RefreshToken); err != nil {
		pkg.Error(w, err)
		return
	}

	session.ClearCookies(w, h.secureCookies)
	pkg.Envelope(w, http.StatusOK, pkg.APIResponse{
		Success:      true,
		Notification: &pkg.Notification{Title: i18n.FromRequest(r).T("auth.signedOut")},
	})
}

// Refresh godoc
// POST /api/auth/refresh
// Body (optional): { "refresh_token": "..." }; the refresh cookie is used otherwise.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = session.RefreshToken(r)
	}
	if req.RefreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	sess, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		session.ClearCookies(w, h.secureCookies)
		pkg.Error(w, err)
		return
	}

	session.SetCookies(w, sess, h.secureCookies)
	pkg.JSON(w, http.StatusOK, sess)
}

// Session godoc
// GET /api/auth/session
//
// Returns the current session, or no data when signed out. A missing or
// stale token is not an error.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := session.AccessToken(r)
	if token == "" {
		pkg.JSON(w, http.StatusOK, nil)
		return
	}

	sess, err := h.authService.GetSession(r.Context(), token, session.RefreshToken(r))
	if err != nil {
		pkg.JSON(w, http.StatusOK, nil)
		return
	}
	pkg.JSON(w, http.StatusOK, sess)
}

// loginThrottled sets Retry-After and returns the sign-in failure notice
// for a locked out ip.
func loginThrottled(w http.ResponseWriter, r *http.Request, limiter *ratelimit.LoginRateLimiter, ip string) *pkg.Notification {
	retryAfter := limiter.RetryAfterSeconds(ip)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	loc := i18n.FromRequest(r)
	return &pkg.Notification{
		Title: loc.T("auth.signIn.failed"),
		Description: loc.TWithParams("notify.tooManyRequests", map[string]string{
			"time": ratelimit.FormatRetryMessage(retryAfter),
		}),
		Variant: pkg.VariantDestructive,
	}
}
