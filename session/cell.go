// Package session holds the admin session as the pages observe it.
//
// A Cell is the one shared, observable value with the current session.
// Subscribing replays the current value as INITIAL_SESSION before any later
// change, under the same lock that orders the changes, so a sign-in that
// lands while a page is mounting is either part of the replay or delivered
// right after it. Pages therefore never ask for the session separately.
//
// A Guard turns the cell into navigation for the admin pages and a Client
// pairs provider calls with the matching cell transition.
package session

import (
	"sync"

	"github.com/tutorzindia/site/models"
)

// Event names a session transition.
type Event string

const (
	InitialSession Event = "INITIAL_SESSION"
	SignedIn       Event = "SIGNED_IN"
	SignedOut      Event = "SIGNED_OUT"
	TokenRefreshed Event = "TOKEN_REFRESHED"
)

// Listener receives every transition of a cell. It runs with the cell
// locked and must not call back into the cell.
type Listener func(event Event, s *models.AuthSession)

// Cell holds the current session, nil when signed out.
type Cell struct {
	mu        sync.Mutex
	current   *models.AuthSession
	listeners map[int]Listener
	nextID    int
}

// NewCell returns a cell holding initial, which may be nil.
func NewCell(initial *models.AuthSession) *Cell {
	return &Cell{
		current:   initial,
		listeners: make(map[int]Listener),
	}
}

// Current returns the session, or nil when signed out.
func (c *Cell) Current() *models.AuthSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers l, immediately calls it with InitialSession and the
// current value, and returns the function that removes it.
func (c *Cell) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = l

	l(InitialSession, c.current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Set records a transition and delivers it to every listener. SignedOut
// always clears the session.
func (c *Cell) Set(event Event, s *models.AuthSession) {
	if event == SignedOut {
		s = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = s
	for _, l := range c.listeners {
		l(event, s)
	}
}
