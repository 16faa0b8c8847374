package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

type fakeProvider struct {
	session   *models.AuthSession
	signInErr error
	signedOut []string
}

func (f *fakeProvider) SignIn(_ context.Context, req *models.SignInRequest) (*models.AuthSession, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeProvider) SignUp(_ context.Context, req *models.SignUpRequest) (*models.User, error) {
	return &models.User{Email: req.Email, FullName: req.FullName}, nil
}

func (f *fakeProvider) SignOut(_ context.Context, refreshToken string) error {
	f.signedOut = append(f.signedOut, refreshToken)
	return nil
}

func (f *fakeProvider) Refresh(_ context.Context, _ string) (*models.AuthSession, error) {
	return &models.AuthSession{AccessToken: "new", RefreshToken: "r2"}, nil
}

type recorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *recorder) navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func TestSubscribeReplaysCurrentSession(t *testing.T) {
	s := &models.AuthSession{AccessToken: "a"}
	cell := NewCell(s)

	var events []Event
	unsub := cell.Subscribe(func(e Event, got *models.AuthSession) {
		events = append(events, e)
		assert.Same(t, s, got)
	})
	assert.Equal(t, []Event{InitialSession}, events)

	unsub()
	unsub()
	cell.Set(TokenRefreshed, s)
	assert.Len(t, events, 1)
}

func TestSignedOutClearsSession(t *testing.T) {
	cell := NewCell(&models.AuthSession{})
	cell.Set(SignedOut, &models.AuthSession{})
	assert.Nil(t, cell.Current())
}

func TestTarget(t *testing.T) {
	s := &models.AuthSession{}
	assert.Equal(t, LoginRoute, Target(DashboardPage, nil))
	assert.Equal(t, "", Target(DashboardPage, s))
	assert.Equal(t, DashboardRoute, Target(LoginPage, s))
	assert.Equal(t, "", Target(LoginPage, nil))
}

func TestGuardDashboardWithoutSession(t *testing.T) {
	rec := &recorder{}
	g := Watch(NewCell(nil), DashboardPage, rec.navigate)
	defer g.Stop()

	assert.Equal(t, []string{LoginRoute}, rec.routes)
	assert.Equal(t, LoginRoute, g.Destination())
}

func TestGuardLoginThenSessionChange(t *testing.T) {
	cell := NewCell(nil)
	rec := &recorder{}
	g := Watch(cell, LoginPage, rec.navigate)
	defer g.Stop()
	assert.Empty(t, rec.routes)

	provider := &fakeProvider{session: &models.AuthSession{AccessToken: "a", RefreshToken: "r"}}
	client := NewClient(provider, cell)

	_, err := client.SignIn(context.Background(), &models.SignInRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []string{DashboardRoute}, rec.routes)

	// A refresh while still on the login page does not navigate twice.
	_, err = client.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{DashboardRoute}, rec.routes)
}

func TestGuardInvalidCredentialsStays(t *testing.T) {
	cell := NewCell(nil)
	rec := &recorder{}
	g := Watch(cell, LoginPage, rec.navigate)
	defer g.Stop()

	client := NewClient(&fakeProvider{signInErr: fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)}, cell)
	_, err := client.SignIn(context.Background(), &models.SignInRequest{Email: "a@b.c", Password: "bad"})

	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	assert.Empty(t, rec.routes)
	assert.Nil(t, cell.Current())
}

func TestClientSignOut(t *testing.T) {
	cell := NewCell(&models.AuthSession{RefreshToken: "r"})
	rec := &recorder{}
	g := Watch(cell, DashboardPage, rec.navigate)
	defer g.Stop()
	assert.Empty(t, rec.routes)

	provider := &fakeProvider{}
	require.NoError(t, NewClient(provider, cell).SignOut(context.Background()))

	assert.Equal(t, []string{"r"}, provider.signedOut)
	assert.Equal(t, []string{LoginRoute}, rec.routes)
}

func TestClientSignUpLeavesCell(t *testing.T) {
	cell := NewCell(nil)
	user, err := NewClient(&fakeProvider{}, cell).SignUp(context.Background(), &models.SignUpRequest{Email: "a@b.c", FullName: "A"})
	require.NoError(t, err)
	assert.Equal(t, "A", user.FullName)
	assert.Nil(t, cell.Current())

	_, err = NewClient(&fakeProvider{}, cell).Refresh(context.Background())
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}
