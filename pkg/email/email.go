// Package email sends the site's transactional mail through Resend.
//
// Services depend on the Sender interface; main wires NewResendSender when
// RESEND_API_KEY is set and leaves the sender nil otherwise.
package email

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v3"
)

// Sender sends the two mails the site produces.
type Sender interface {
	// SendContactNotice forwards a contact form message to the institute.
	SendContactNotice(ctx context.Context, notice ContactNotice) error
	// SendSignupConfirmation welcomes a new admin and links back to redirectURL.
	SendSignupConfirmation(ctx context.Context, toEmail, fullName, redirectURL string) error
}

// ContactNotice is a contact form message addressed to the institute.
type ContactNotice struct {
	To      string
	Name    string
	Email   string
	Phone   string
	Message string
}

type resendSender struct {
	client    *resend.Client
	fromEmail string
	siteName  string
}

// NewResendSender returns a Sender backed by the Resend API. fromEmail must
// belong to a domain verified in Resend.
func NewResendSender(apiKey, fromEmail, siteName string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		siteName:  siteName,
	}
}

func (s *resendSender) SendContactNotice(ctx context.Context, n ContactNotice) error {
	phone := n.Phone
	if phone == "" {
		phone = "-"
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1e293b;">
  <h2 style="margin:0 0 16px 0;">New message from the website</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Phone:</strong> %s</p>
  <p style="white-space:pre-wrap;">%s</p>
</body>
</html>`, html.EscapeString(n.Name), html.EscapeString(n.Email), html.EscapeString(phone), html.EscapeString(n.Message))

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.siteName, s.fromEmail),
		To:      []string{n.To},
		Subject: fmt.Sprintf("Website message from %s", n.Name),
		Html:    body,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send contact notice: %w", err)
	}
	return nil
}

func (s *resendSender) SendSignupConfirmation(ctx context.Context, toEmail, fullName, redirectURL string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1e293b;">
  <h2 style="margin:0 0 16px 0;">Welcome, %s</h2>
  <p>Your admin account for %s has been created.</p>
  <p><a href="%s" style="color:#2563eb;">Open the admin dashboard</a></p>
  <p style="color:#64748b;font-size:13px;">If you did not sign up, you can ignore this email.</p>
</body>
</html>`, html.EscapeString(fullName), html.EscapeString(s.siteName), html.EscapeString(redirectURL))

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.siteName, s.fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your %s admin account", s.siteName),
		Html:    body,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send signup confirmation: %w", err)
	}
	return nil
}
