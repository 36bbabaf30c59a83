package service

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
)

// Session wraps a durable credential store with derived authentication state
// and change notification. All credential mutations flow through it; a mutex
// serializes writers so a refresh in progress is never clobbered by a stale
// write elsewhere (last writer wins, no torn records).
type Session struct {
	store ports.CredentialStore
	log   zerolog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]func(ports.SessionState)
}

func NewSession(store ports.CredentialStore, log zerolog.Logger) *Session {
	return &Session{
		store: store,
		log:   log,
		subs:  make(map[int]func(ports.SessionState)),
	}
}

func (s *Session) Get() (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get()
}

// Set merges partial into the stored credential and notifies subscribers.
func (s *Session) Set(partial domain.Credential) error {
	s.mu.Lock()
	if err := s.store.Set(partial); err != nil {
		s.mu.Unlock()
		return err
	}
	state, fns := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state, fns)
	return nil
}

// Clear erases all credential fields and notifies subscribers. Used on
// logout and on terminal refresh failure.
func (s *Session) Clear() error {
	s.mu.Lock()
	if err := s.store.Clear(); err != nil {
		s.mu.Unlock()
		return err
	}
	state, fns := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug().Msg("session cleared")
	s.notify(state, fns)
	return nil
}

// State derives the current authentication snapshot from the store.
func (s *Session) State() ports.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Subscribe registers fn to run after every credential mutation. The returned
// function cancels the subscription.
func (s *Session) Subscribe(fn func(ports.SessionState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) stateLocked() ports.SessionState {
	cred, err := s.store.Get()
	if err != nil {
		s.log.Warn().Err(err).Msg("credential store read failed")
		return ports.SessionState{}
	}
	return ports.SessionState{
		Authenticated: cred.Authenticated(),
		Role:          cred.Role(),
		User:          cred.User,
		TokenExpiry:   tokenExpiry(cred.AccessToken),
	}
}

// snapshotLocked captures the derived state and the subscriber list so that
// callbacks can run outside the lock.
func (s *Session) snapshotLocked() (ports.SessionState, []func(ports.SessionState)) {
	state := s.stateLocked()
	fns := make([]func(ports.SessionState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return state, fns
}

func (s *Session) notify(state ports.SessionState, fns []func(ports.SessionState)) {
	for _, fn := range fns {
		fn(state)
	}
}

// tokenExpiry pulls the exp claim from the access token without verifying the
// signature: the client has no signing key, and the value is informational
// only. Returns the zero time when the token is absent or not a JWT.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
