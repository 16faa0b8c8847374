package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/email"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/session"
	"github.com/tutorzindia/site/ws"
)

// AuthService is the auth provider: password accounts, access tokens and
// refresh sessions. It satisfies session.Provider.
type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error)
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthSession, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.AuthSession, error)
	// GetSession rebuilds the session of a still valid access token.
	GetSession(ctx context.Context, accessToken, refreshToken string) (*models.AuthSession, error)
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	DeleteExpiredSessions(ctx context.Context) error
}

var _ session.Provider = (AuthService)(nil)

const (
	bcryptCost  = 12
	tokenIssuer = "tutorzindia"
)

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	publisher   ws.EventPublisher
	mailer      email.Sender
	jwtSecret   []byte
	accessExp   time.Duration
	refreshExp  time.Duration
	publicURL   string
}

// NewAuthService wires the provider. publisher and mailer may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	publisher ws.EventPublisher,
	mailer email.Sender,
	jwtSecret string,
	accessExpMinutes int,
	refreshExpDays int,
	publicURL string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		mailer:      mailer,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:  time.Duration(refreshExpDays) * 24 * time.Hour,
		publicURL:   publicURL,
	}
}

// SignUp creates an account. The first account becomes the admin; later
// accounts can sign in but cannot change content. A confirmation mail
// pointing at req.RedirectURL, kept on this site, is sent when mail is
// configured.
func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		redirect := s.confirmationRedirect(req.RedirectURL)
		if err := s.mailer.SendSignupConfirmation(ctx, user.Email, user.FullName, redirect); err != nil {
			log.Printf("[auth] failed to send signup confirmation to %s: %v", user.Email, err)
		}
	}

	log.Printf("[auth] account created: %s (admin=%t)", user.Email, user.IsAdmin)
	user.PasswordHash = ""
	return user, nil
}

// confirmationRedirect keeps the link of the confirmation mail on this site:
// a path, or an absolute URL with the public origin. Anything else links to
// the dashboard.
func (s *authService) confirmationRedirect(raw string) string {
	fallback := s.publicURL + session.DashboardRoute

	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "\\\r\n\t") {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.User != nil {
		return fallback
	}

	if u.Scheme == "" && u.Host == "" {
		if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
			return fallback
		}
		return s.publicURL + u.RequestURI()
	}

	base, err := url.Parse(s.publicURL)
	if err != nil || !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return fallback
	}
	return u.String()
}

func (s *authService) SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthSession, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	sess, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(user.ID, session.SignedIn)
	return sess, nil
}

// SignOut deletes the refresh session. An unknown token is already signed out.
func (s *authService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	stored, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.sessionRepo.DeleteByRefreshToken(ctx, refreshToken); err != nil {
		return err
	}

	s.publish(stored.UserID, session.SignedOut)
	return nil
}

// Refresh rotates the refresh token and issues a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.AuthSession, error) {
	stored, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.sessionRepo.DeleteByRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	sess, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(user.ID, session.TokenRefreshed)
	return sess, nil
}

func (s *authService) GetSession(ctx context.Context, accessToken, refreshToken string) (*models.AuthSession, error) {
	claims, err := s.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", pkg.ErrUnauthorized)
		}
		return nil, err
	}
	user.PasswordHash = ""

	sess := &models.AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: missing token", pkg.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}
	return claims, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) DeleteExpiredSessions(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx)
}

// issue signs an access token and stores a new refresh session.
func (s *authService) issue(ctx context.Context, user *models.User) (*models.AuthSession, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessExp)

	claims := &models.TokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshToken := hex.EncodeToString(refreshBytes)

	if err := s.sessionRepo.Create(ctx, &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.refreshExp),
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	u := *user
	u.PasswordHash = ""
	return &models.AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         u,
	}, nil
}

func (s *authService) publish(userID string, event session.Event) {
	if s.publisher != nil {
		s.publisher.PublishSessionChange(userID, event)
	}
}
