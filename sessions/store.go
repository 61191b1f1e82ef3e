// Package sessions tracks the owner's login-flow state. The store is
// deliberately volatile: a restart logs the owner out.
package sessions

import (
	"sync"
	"time"
)

// Step is the position in the login flow. The zero value means no
// session exists, which is the same as "not authenticated".
type Step int

const (
	None Step = iota
	AwaitingUsername
	AwaitingPassword
	Authenticated
)

type session struct {
	step            Step
	authenticatedAt time.Time
}

// Store is a mutex-guarded map keyed by platform identity. Handlers run
// on one goroutine per inbound update, so every read-modify-write here
// must happen under the lock, including the expiry deletion inside
// Valid.
type Store struct {
	mu  sync.Mutex
	ttl time.Duration
	all map[int64]session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, all: make(map[int64]session)}
}

// Begin creates (or resets) a session at the username prompt.
func (s *Store) Begin(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all[id] = session{step: AwaitingUsername}
}

// Current returns the step of the live session, or None.
func (s *Store) Current(id int64) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all[id].step
}

// Advance moves a session from the username prompt to the password
// prompt. A no-op for any other step.
func (s *Store) Advance(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.all[id].step == AwaitingUsername {
		s.all[id] = session{step: AwaitingPassword}
	}
}

// Authenticate completes the login flow, stamping the session so Valid
// can age it.
func (s *Store) Authenticate(id int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all[id] = session{step: Authenticated, authenticatedAt: now}
}

// Valid reports whether id holds an authenticated session younger than
// the TTL. An expired session is deleted under the same lock, so a
// concurrent check cannot observe it half-dead. Age is computed from
// the caller's clock on every call, never cached.
func (s *Store) Valid(id int64, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.all[id]
	if !ok || sess.step != Authenticated {
		return false
	}
	if now.Sub(sess.authenticatedAt) >= s.ttl {
		delete(s.all, id)
		return false
	}
	return true
}

// Delete drops the session whatever its step.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.all, id)
}
