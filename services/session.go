package services

import (
	"context"
	"sync"
)

// SubscriptionFunc runs a long-lived step observation subscription for a user
// until its context is cancelled. The server wires this to a sensor poller.
type SubscriptionFunc func(ctx context.Context, userID string)

// Session is the per-user composition root handed to the presentation layer:
// an observable signed-in flag plus the lifetime of the user's step
// subscription. Sessions are owned by a single user and never shared.
type Session struct {
	UserID string

	mu        sync.Mutex
	signedIn  bool
	observers []func(bool)
	cancel    context.CancelFunc
}

// IsSignedIn reports the observable signed-in flag that gates which top-level
// screen a fresh client launch lands on.
func (s *Session) IsSignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

// OnSignedInChange registers an observer, invoked with the current value
// immediately and again on every change.
func (s *Session) OnSignedInChange(fn func(bool)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	current := s.signedIn
	s.mu.Unlock()
	fn(current)
}

func (s *Session) setSignedIn(v bool) {
	s.mu.Lock()
	if s.signedIn == v {
		s.mu.Unlock()
		return
	}
	s.signedIn = v
	observers := make([]func(bool), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

// SessionManager tracks the active session per signed-in user. Signing in
// replaces any previous session wholesale, cancelling its subscription rather
// than cancelling individual operations.
type SessionManager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	subscribe SubscriptionFunc
}

func NewSessionManager(subscribe SubscriptionFunc) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		subscribe: subscribe,
	}
}

// Begin starts a session for the user, replacing an existing one.
func (m *SessionManager) Begin(userID string) *Session {
	m.mu.Lock()
	old := m.sessions[userID]
	session := &Session{UserID: userID, signedIn: true}
	if m.subscribe != nil {
		ctx, cancel := context.WithCancel(context.Background())
		session.cancel = cancel
		go m.subscribe(ctx, userID)
	}
	m.sessions[userID] = session
	m.mu.Unlock()

	// Notify outside the manager lock; observers may call back into it.
	if old != nil {
		if old.cancel != nil {
			old.cancel()
		}
		old.setSignedIn(false)
	}
	return session
}

// End tears down the user's session: the subscription is cancelled and the
// signed-in flag flips for any observers still attached.
func (m *SessionManager) End(userID string) {
	m.mu.Lock()
	session, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	if session.cancel != nil {
		session.cancel()
	}
	session.setSignedIn(false)
}

// Get returns the active session for the user, if any.
func (m *SessionManager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	return session, ok
}
