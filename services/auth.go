package services

import (
	"sync"

	"github.com/rs/zerolog/log"

	"minerva/api/errs"
	"minerva/storage"
)

type Credentials struct {
	Username string
	Password string
}

// Authenticator verifies a credential pair. The static implementation
// below is the default; call sites only see the interface so the check
// is swappable.
type Authenticator interface {
	Verify(creds Credentials) bool
}

type StaticAuthenticator struct {
	Username string
	Password string
}

func (a StaticAuthenticator) Verify(creds Credentials) bool {
	return creds.Username == a.Username && creds.Password == a.Password
}

// Session tracks the authenticated flag for the single active session
// and mirrors it to the store so it survives a restart. This is a
// cosmetic gate, not a security boundary.
type Session struct {
	mu            sync.RWMutex
	authenticated bool
	auth          Authenticator
	store         storage.Store
}

func NewSession(auth Authenticator, store storage.Store) *Session {
	return &Session{auth: auth, store: store}
}

// Restore loads the persisted flag from a previous session.
func (s *Session) Restore() {
	var flag bool
	if _, err := s.store.Load(storage.KeyAuthenticated, &flag); err != nil {
		log.Error().Err(err).Msg("failed to restore session flag")
		return
	}
	s.mu.Lock()
	s.authenticated = flag
	s.mu.Unlock()
}

func (s *Session) Login(creds Credentials) error {
	if !s.auth.Verify(creds) {
		return errs.ErrInvalidCredentials
	}
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()

	if err := s.store.Save(storage.KeyAuthenticated, true); err != nil {
		log.Error().Err(err).Msg("failed to persist session flag")
	}
	return nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()

	if err := s.store.Delete(storage.KeyAuthenticated); err != nil {
		log.Error().Err(err).Msg("failed to clear session flag")
	}
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}
