package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/session"
)

// TokenValidator checks an access token.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// Handler upgrades /ws requests.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
	upgrader       websocket.Upgrader
}

// NewHandler accepts connections whose Origin is in allowedOrigins, or any
// same-host origin when the list is empty.
func NewHandler(hub *Hub, tokenValidator TokenValidator, allowedOrigins []string) *Handler {
	h := &Handler{hub: hub, tokenValidator: tokenValidator}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin] || allowed["*"]
		}
	}
	return h
}

// HandleConnection serves GET /ws?page=login|dashboard[&token=...].
//
// The token may also come from the access cookie. The dashboard page without
// a valid token still connects: its guard sends it to the login page at once.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	page := session.Page(r.URL.Query().Get("page"))
	if page != session.LoginPage && page != session.DashboardPage {
		http.Error(w, "unknown page", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		token = session.AccessToken(r)
	}

	userID := anonymous
	var current *models.AuthSession
	if token != "" {
		if claims, err := h.tokenValidator.ValidateAccessToken(token); err == nil {
			userID = claims.UserID
			current = &models.AuthSession{
				AccessToken: token,
				User:        models.User{ID: claims.UserID, Email: claims.Email, IsAdmin: claims.IsAdmin},
			}
			if claims.ExpiresAt != nil {
				current.ExpiresAt = claims.ExpiresAt.Time
			}
		}
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %q: %v", userID, err)
		return
	}

	client := newClient(h.hub, wsConn, userID, page, session.NewCell(current))
	client.watch()

	select {
	case h.hub.register <- client:
	case <-h.hub.quit:
		wsConn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}
