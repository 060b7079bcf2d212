// Package session owns the authentication credential and the current
// identity. Every component that needs a credential reads it from here;
// nothing else writes it.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/store"
)

// AuthAPI is the slice of the gateway the session depends on.
type AuthAPI interface {
	ObtainToken(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*api.User, error)
}

// Session holds the credential and, when the last identity check
// succeeded, the identity behind it. Identity is never trusted without
// a live check: it is set only as the direct result of a successful Me
// call and demoted as the direct result of a failed one.
type Session struct {
	auth     AuthAPI
	creds    store.CredentialRepo
	token    string
	identity *api.User
}

// New creates a Session. The caller wires the session back into the
// gateway as its credential source.
func New(auth AuthAPI, creds store.CredentialRepo) *Session {
	return &Session{auth: auth, creds: creds}
}

// Credential returns the current bearer credential, or "" when
// unauthenticated. Implements api.CredentialSource.
func (s *Session) Credential() string {
	return s.token
}

// Identity returns the verified identity, or nil.
func (s *Session) Identity() *api.User {
	return s.identity
}

// Authenticated reports whether a verified identity exists.
func (s *Session) Authenticated() bool {
	return s.identity != nil
}

// Load recovers the stored credential and runs the identity check.
// Storage unavailability yields an empty credential; Load never fails
// the process. An expired or invalid stored credential demotes the
// session without retry, leaving the stored value for Logout to clear.
func (s *Session) Load(ctx context.Context) {
	s.token = s.creds.Load()
	if s.token == "" {
		return
	}
	s.checkIdentity(ctx)
}

// Login exchanges credentials for a token, persists it, and runs the
// identity check. Rejected credentials leave the session exactly as it
// was: no partial state.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.auth.ObtainToken(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.token = token
	if saveErr := s.creds.Save(token); saveErr != nil {
		// Session still works for this run; persistence is best effort.
		fmt.Fprintf(os.Stderr, "warning: failed to save credential: %v\n", saveErr)
	}

	if !s.checkIdentity(ctx) {
		return fmt.Errorf("login: credential accepted but identity check failed")
	}
	return nil
}

// Logout clears credential, storage, and identity. Idempotent.
func (s *Session) Logout(ctx context.Context) error {
	s.token = ""
	s.identity = nil
	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// checkIdentity verifies the current credential. On failure the
// in-memory session is demoted to unauthenticated.
func (s *Session) checkIdentity(ctx context.Context) bool {
	user, err := s.auth.Me(ctx)
	if err != nil {
		s.token = ""
		s.identity = nil
		return false
	}
	s.identity = user
	return true
}
