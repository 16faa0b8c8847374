package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of an access token. It lives here because the
// services, middleware and ws packages all read it.
type TokenClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
