package models

import (
	"strings"
	"time"
)

// User is an admin account held by the auth provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignUpRequest is the admin sign-up form. RedirectURL is the page the
// confirmation mail links back to.
type SignUpRequest struct {
	FullName    string `json:"full_name" form:"full_name" label:"Full name" validate:"required"`
	Email       string `json:"email" form:"email" label:"Email" validate:"required,email"`
	Password    string `json:"password" form:"password" label:"Password" validate:"required,min=6" trim:"false"`
	RedirectURL string `json:"redirect_url" form:"redirect_url" label:"Redirect URL"`
}

// Validate checks the sign-up fields and lowercases the email.
func (r *SignUpRequest) Validate() error {
	if err := validateForm(r); err != nil {
		return err
	}
	r.Email = strings.ToLower(r.Email)
	return nil
}

// SignInRequest is the admin login form.
type SignInRequest struct {
	Email    string `json:"email" form:"email" label:"Email" validate:"required"`
	Password string `json:"password" form:"password" label:"Password" validate:"required" trim:"false"`
}

// Validate checks that email and password are present.
func (r *SignInRequest) Validate() error {
	if err := validateForm(r); err != nil {
		return err
	}
	r.Email = strings.ToLower(r.Email)
	return nil
}
