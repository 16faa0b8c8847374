package session

import (
	"context"
	"fmt"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

// Provider is the auth backend.
type Provider interface {
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthSession, error)
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.AuthSession, error)
}

// Client is the app side of the auth provider: every successful call is
// followed by the matching transition of the cell. Callers never navigate
// on success; guards watching the cell do.
type Client struct {
	provider Provider
	cell     *Cell
}

// NewClient binds provider to cell.
func NewClient(provider Provider, cell *Cell) *Client {
	return &Client{provider: provider, cell: cell}
}

// Session returns the current session, or nil.
func (c *Client) Session() *models.AuthSession {
	return c.cell.Current()
}

// SignIn signs in with a password and publishes SignedIn.
func (c *Client) SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthSession, error) {
	s, err := c.provider.SignIn(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cell.Set(SignedIn, s)
	return s, nil
}

// SignUp creates an account. The account has to sign in afterwards, so the
// cell is left alone.
func (c *Client) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {
	return c.provider.SignUp(ctx, req)
}

// SignOut ends the current session, if any, and publishes SignedOut.
func (c *Client) SignOut(ctx context.Context) error {
	if cur := c.cell.Current(); cur != nil {
		if err := c.provider.SignOut(ctx, cur.RefreshToken); err != nil {
			return err
		}
	}
	c.cell.Set(SignedOut, nil)
	return nil
}

// Refresh renews the access token and publishes TokenRefreshed.
func (c *Client) Refresh(ctx context.Context) (*models.AuthSession, error) {
	cur := c.cell.Current()
	if cur == nil {
		return nil, fmt.Errorf("%w: not signed in", pkg.ErrUnauthorized)
	}

	s, err := c.provider.Refresh(ctx, cur.RefreshToken)
	if err != nil {
		return nil, err
	}
	c.cell.Set(TokenRefreshed, s)
	return s, nil
}
