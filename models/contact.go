package models

import (
	"strings"
	"time"
)

// ContactInfo is the singleton row with the institute's contact details.
type ContactInfo struct {
	ID        string     `json:"id"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	WhatsApp  string     `json:"whatsapp"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// WhatsAppLink returns the wa.me deep link for the WhatsApp number.
func (c ContactInfo) WhatsAppLink() string {
	var digits strings.Builder
	for _, ch := range c.WhatsApp {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	return "https://wa.me/" + digits.String()
}

// WithDefaults fills every blank field from def.
func (c ContactInfo) WithDefaults(def ContactInfo) ContactInfo {
	if c.Phone == "" {
		c.Phone = def.Phone
	}
	if c.Email == "" {
		c.Email = def.Email
	}
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.WhatsApp == "" {
		c.WhatsApp = def.WhatsApp
	}
	return c
}

// ContactInfoRequest is the admin settings form. All fields are optional.
type ContactInfoRequest struct {
	Phone    string `json:"phone" form:"phone" label:"Phone"`
	Email    string `json:"email" form:"email" label:"Email" validate:"omitempty,email"`
	Address  string `json:"address" form:"address" label:"Address"`
	WhatsApp string `json:"whatsapp" form:"whatsapp" label:"WhatsApp"`
}

// Validate only normalizes whitespace and checks the email pattern.
func (r *ContactInfoRequest) Validate() error {
	return validateForm(r)
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessageRequest is the public contact form.
type ContactMessageRequest struct {
	Name    string `json:"name" form:"name" label:"Name" validate:"required"`
	Email   string `json:"email" form:"email" label:"Email" validate:"required,email"`
	Phone   string `json:"phone" form:"phone" label:"Phone"`
	Message string `json:"message" form:"message" label:"Message" validate:"required"`
}

// Validate checks that name, email and message are present.
func (r *ContactMessageRequest) Validate() error {
	return validateForm(r)
}

// ToContactMessage copies the form into a new row.
func (r *ContactMessageRequest) ToContactMessage() *ContactMessage {
	return &ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Message: r.Message,
	}
}
