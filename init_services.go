package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/tutorzindia/site/config"
	"github.com/tutorzindia/site/pkg/email"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/pkg/storage"
	"github.com/tutorzindia/site/services"
	"github.com/tutorzindia/site/ws"
)

// Services holds every service of the site.
type Services struct {
	Auth         services.AuthService
	Registration services.RegistrationService
	Gallery      services.GalleryService
	Achievement  services.AchievementService
	Contact      services.ContactService

	// UploadsEnabled reports whether gallery uploads have a bucket.
	UploadsEnabled bool
}

// RateLimiters holds the limiters shared by pages and API handlers.
type RateLimiters struct {
	Login      *ratelimit.LoginRateLimiter
	Submission *ratelimit.SubmissionLimiter
}

// Stop ends the cleanup loops of every limiter.
func (l *RateLimiters) Stop() {
	l.Login.Stop()
	l.Submission.Stop()
}

// initServices builds the services. Mail and uploads are optional and are
// left out when their settings are missing.
func initServices(db *sql.DB, repos *Repositories, publisher ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	// ─── Email (optional) ───
	var mailer email.Sender
	if cfg.Email.Enabled() {
		mailer = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, "TutorzIndia")
		log.Printf("[main] email enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email disabled (RESEND_API_KEY or RESEND_FROM not set)")
	}

	// ─── Uploads (optional) ───
	var uploader storage.Uploader
	if cfg.Storage.Enabled() {
		u, err := storage.NewS3Uploader(cfg.Storage.Bucket, cfg.Storage.Region,
			cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey)
		if err != nil {
			log.Printf("[main] gallery uploads disabled: %v", err)
		} else {
			uploader = u
			log.Printf("[main] gallery uploads enabled (bucket=%s)", cfg.Storage.Bucket)
		}
	}

	svcs := &Services{
		Auth: services.NewAuthService(
			repos.User, repos.Session, publisher, mailer,
			cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
			cfg.Server.PublicURL,
		),
		Registration: services.NewRegistrationService(repos.Registration, publisher, cfg.Server.Location),
		Gallery:      services.NewGalleryService(repos.Gallery, uploader, cfg.Storage.MaxUploadSize, publisher),
		Achievement:  services.NewAchievementService(repos.Achievement, publisher),
		Contact: services.NewContactService(
			db, repos.ContactInfo, repos.ContactMessage,
			mailer, cfg.Email.NotifyEmail, publisher,
		),
		UploadsEnabled: uploader != nil,
	}

	limiters := &RateLimiters{
		Login:      ratelimit.NewLoginRateLimiter(5, 2*time.Minute),
		Submission: ratelimit.NewSubmissionLimiter(20*time.Second, 3, 10*time.Minute),
	}

	return svcs, limiters
}
