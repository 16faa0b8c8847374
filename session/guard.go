package session

import (
	"sync"

	"github.com/tutorzindia/site/models"
)

// Admin routes.
const (
	LoginRoute     = "/admin"
	DashboardRoute = "/admin/dashboard"
)

// Page is an admin page a guard protects.
type Page string

const (
	LoginPage     Page = "login"
	DashboardPage Page = "dashboard"
)

// Target is where page has to go given s, or "" to stay:
// the dashboard without a session goes to the login page and the login
// page with a session goes to the dashboard.
func Target(page Page, s *models.AuthSession) string {
	switch {
	case page == DashboardPage && s == nil:
		return LoginRoute
	case page == LoginPage && s != nil:
		return DashboardRoute
	}
	return ""
}

// Navigator moves the page to route.
type Navigator func(route string)

// Guard keeps one admin page consistent with a cell.
type Guard struct {
	page     Page
	navigate Navigator

	mu    sync.Mutex
	last  string
	unsub func()
}

// Watch subscribes a guard for page to cell. The replayed initial value is
// checked right away, so a page that needs to move does so before Watch
// returns.
func Watch(cell *Cell, page Page, navigate Navigator) *Guard {
	g := &Guard{page: page, navigate: navigate}
	unsub := cell.Subscribe(g.handle)

	g.mu.Lock()
	g.unsub = unsub
	g.mu.Unlock()
	return g
}

// Stop unsubscribes the guard.
func (g *Guard) Stop() {
	g.mu.Lock()
	unsub := g.unsub
	g.unsub = nil
	g.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Destination is the last route the guard navigated to, "" if none.
func (g *Guard) Destination() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

func (g *Guard) handle(_ Event, s *models.AuthSession) {
	target := Target(g.page, s)
	if target == "" {
		return
	}

	g.mu.Lock()
	if target == g.last {
		g.mu.Unlock()
		return
	}
	g.last = target
	g.mu.Unlock()

	g.navigate(target)
}
