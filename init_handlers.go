package main

import (
	"fmt"

	"github.com/tutorzindia/site/config"
	"github.com/tutorzindia/site/handlers"
	"github.com/tutorzindia/site/web"
	"github.com/tutorzindia/site/ws"
)

// Handlers holds every HTTP handler of the site.
type Handlers struct {
	Pages        *handlers.PageHandler
	AdminPages   *handlers.AdminPageHandler
	Auth         *handlers.AuthHandler
	Content      *handlers.ContentHandler
	Registration *handlers.RegistrationHandler
	Contact      *handlers.ContactHandler
	Gallery      *handlers.GalleryHandler
	Achievement  *handlers.AchievementHandler
	WS           *ws.Handler
}

// initHandlers parses the page templates and builds the handlers.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub, cfg *config.Config) (*Handlers, error) {
	renderer, err := web.NewRenderer(cfg.Server.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	wsOrigins := append([]string{cfg.Server.PublicURL}, cfg.CORS.AllowedOrigins...)

	return &Handlers{
		Pages: handlers.NewPageHandler(renderer,
			svcs.Registration, svcs.Gallery, svcs.Achievement, svcs.Contact,
			limiters.Submission),
		AdminPages: handlers.NewAdminPageHandler(renderer,
			svcs.Registration, svcs.Gallery, svcs.Achievement, svcs.Contact,
			limiters.Login, handlers.AdminPageConfig{
				UploadsEnabled: svcs.UploadsEnabled,
				MaxUploadSize:  cfg.Storage.MaxUploadSize,
				SecureCookies:  cfg.Cookie.Secure,
			}),
		Auth:         handlers.NewAuthHandler(svcs.Auth, limiters.Login, cfg.Cookie.Secure),
		Content:      handlers.NewContentHandler(svcs.Gallery, svcs.Achievement, svcs.Contact),
		Registration: handlers.NewRegistrationHandler(svcs.Registration, limiters.Submission),
		Contact:      handlers.NewContactHandler(svcs.Contact, limiters.Submission),
		Gallery:      handlers.NewGalleryHandler(svcs.Gallery, cfg.Storage.MaxUploadSize),
		Achievement:  handlers.NewAchievementHandler(svcs.Achievement),
		WS:           ws.NewHandler(hub, svcs.Auth, wsOrigins),
	}, nil
}
